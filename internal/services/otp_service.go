package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/email"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"
)

// SendLimiter throttles how often a code may be mailed to one address.
type SendLimiter interface {
	Allow(ctx context.Context, key string) (bool, string, error)
	MarkSent(ctx context.Context, key string) error
}

type OTPService struct {
	DB        *sql.DB
	Mailer    email.Sender
	Limiter   SendLimiter
	TTL       time.Duration
	Now       func() time.Time
	Generate  func() (string, error)
	RequestID string
}

// GenerateOTP returns a uniformly random six digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s OTPService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 5 * time.Minute
}

// RequestCode issues a fresh code of type t for the address and mails it.
// Registration codes need an unused address; the other types need an
// existing account.
func (s OTPService) RequestCode(ctx context.Context, rawEmail string, t models.CodeType) error {
	addr := utils.NormalizeEmail(rawEmail)
	if addr == "" {
		return domain.ValidationError{Field: "email", Msg: "is required"}
	}
	if !utils.IsValidEmail(addr) {
		return domain.ValidationError{Field: "email", Msg: "invalid email format"}
	}
	if !t.Valid() {
		return domain.ValidationError{Field: "code_type", Msg: "must be one of R, C, D"}
	}

	exists, err := repositories.UserRepository{DB: s.DB}.ExistsByEmail(ctx, addr)
	if err != nil {
		return err
	}
	if t == models.CodeRegister && exists {
		return domain.ConflictError{Msg: "email is already in use"}
	}
	if t != models.CodeRegister && !exists {
		return domain.NotFoundError{Resource: "account"}
	}

	limitKey := addr + ":" + string(t)
	if s.Limiter != nil {
		ok, reason, err := s.Limiter.Allow(ctx, limitKey)
		switch {
		case err != nil:
			utils.LogEvent(s.RequestID, "otp", "limiter_error", err.Error())
		case !ok:
			return domain.RateLimitedError{Msg: reason}
		}
	}

	generate := s.Generate
	if generate == nil {
		generate = GenerateOTP
	}
	code, err := generate()
	if err != nil {
		return err
	}

	otp := models.OTPCode{Email: addr, Code: code, Type: t, ExpiresAt: s.now().Add(s.ttl())}
	if err := (repositories.OTPRepository{DB: s.DB}).Upsert(ctx, otp); err != nil {
		return err
	}

	subject, body := email.VerificationMessage(t, code, s.ttl())
	if err := s.Mailer.Send(ctx, addr, subject, body); err != nil {
		utils.LogEvent(s.RequestID, "otp", "send_error", err.Error())
		return domain.InternalError{Msg: "failed to send verification code", Err: err}
	}
	if s.Limiter != nil {
		if err := s.Limiter.MarkSent(ctx, limitKey); err != nil {
			utils.LogEvent(s.RequestID, "otp", "limiter_error", err.Error())
		}
	}

	utils.LogEvent(s.RequestID, "otp", "send_code", "to="+utils.MaskEmail(addr)+" code_type="+string(t))
	return nil
}
