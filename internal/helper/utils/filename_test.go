package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedImage(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"animation.gif", true},
		{"photo.webp", false},
		{"archive.zip", false},
		{"script.png.exe", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AllowedImage(tt.filename), "filename %q", tt.filename)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my photo.png", "my_photo.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\evil.png`, "evil.png"},
		{"/absolute/path/pic.jpg", "pic.jpg"},
		{"weird$chars!.gif", "weird_chars_.gif"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
