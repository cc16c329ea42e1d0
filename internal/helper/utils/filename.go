package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// AllowedImage reports whether the filename carries one of the accepted
// image extensions (case-insensitive).
func AllowedImage(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename strips path components and traversal sequences and
// replaces anything outside [A-Za-z0-9_.-] so the result is safe to use
// as a single path element. Returns "" when nothing usable remains.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	name = strings.Trim(name, "._-")
	if name == "" || name == "." {
		return ""
	}
	return name
}
