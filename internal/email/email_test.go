package email

import (
	"context"
	"testing"
	"time"

	intconfig "dpxcruise/internal/config"
	"dpxcruise/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestVerificationMessage(t *testing.T) {
	subject, body := VerificationMessage(models.CodeRegister, "123456", 5*time.Minute)
	assert.Contains(t, subject, "Verify Your Email")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "5 minutes")

	subject, _ = VerificationMessage(models.CodeChangePassword, "654321", 5*time.Minute)
	assert.Contains(t, subject, "Password Reset")

	subject, _ = VerificationMessage(models.CodeDeleteAccount, "111111", 5*time.Minute)
	assert.Contains(t, subject, "Account Deletion")
}

func TestNewSenderFallsBackToLog(t *testing.T) {
	s := NewSender(intconfig.SMTPConfig{})
	_, ok := s.(LogSender)
	assert.True(t, ok)
	assert.NoError(t, s.Send(context.Background(), "a@b.com", "hi", "body"))

	_, ok = NewSender(intconfig.SMTPConfig{Host: "smtp.example.com", Port: 587}).(*SMTPSender)
	assert.True(t, ok)
}
