package email

import (
	"context"
	"fmt"
	"log"
	"time"

	intconfig "dpxcruise/internal/config"
	"dpxcruise/internal/domain/models"

	"gopkg.in/gomail.v2"
)

// Sender delivers a plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg intconfig.SMTPConfig) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// LogSender writes messages to the process log. Used when SMTP is not
// configured, typically in local development.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, subject, body string) error {
	log.Printf("[EMAIL] action=send to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// NewSender picks SMTP when it is configured.
func NewSender(cfg intconfig.SMTPConfig) Sender {
	if cfg.Enabled() {
		return NewSMTPSender(cfg)
	}
	return LogSender{}
}

// VerificationMessage renders the email carrying an OTP for the given action.
func VerificationMessage(t models.CodeType, code string, ttl time.Duration) (subject, body string) {
	minutes := int(ttl.Minutes())
	switch t {
	case models.CodeRegister:
		return "Welcome to DPX Cruise - Verify Your Email",
			fmt.Sprintf("Thank you for signing up with DPX Cruise! To complete your registration, please use the verification code: %s. "+
				"This code is valid for %d minutes. If you did not request this, please ignore this email.", code, minutes)
	case models.CodeChangePassword:
		return "DPX Cruise - Password Reset Verification Code",
			fmt.Sprintf("We received a request to reset your password. Please use the verification code: %s. "+
				"This code is valid for %d minutes. If you did not request a password reset, please ignore this email or contact our support team.", code, minutes)
	default:
		return "DPX Cruise - Account Deletion Confirmation",
			fmt.Sprintf("We received a request to delete your account. To confirm this action, please use the verification code %s. "+
				"This code is valid for %d minutes. If you did not request to delete your account, please contact our support team immediately.", code, minutes)
	}
}
