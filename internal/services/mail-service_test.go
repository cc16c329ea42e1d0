package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailService_MissingCredentials(t *testing.T) {
	svc := NewMailService("smtp.example.com", "587", "", "", "StarK team")

	err := svc.SendCode(context.Background(), "a@example.com", "Someone", "123456")
	assert.ErrorIs(t, err, ErrMailNotConfigured)
}
