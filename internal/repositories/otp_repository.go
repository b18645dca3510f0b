package repositories

import (
	"context"
	"time"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

// OTPRepository keeps at most one live code per (email, code type).
type OTPRepository struct {
	DB intdb.DBTX
}

func (r OTPRepository) db() intdb.DBTX { return conn(r.DB) }

// Upsert replaces any previous code of the same type for the email.
func (r OTPRepository) Upsert(ctx context.Context, c models.OTPCode) error {
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO dpx_otp_code (email, otp_code, code_type, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE otp_code = VALUES(otp_code), expires_at = VALUES(expires_at)
	`, c.Email, c.Code, string(c.Type), c.ExpiresAt)
	return err
}

// IsValid reports whether code matches a live row at now. The row is locked
// when called inside a transaction.
func (r OTPRepository) IsValid(ctx context.Context, email, code string, t models.CodeType, now time.Time) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dpx_otp_code
		WHERE email = ? AND otp_code = ? AND code_type = ? AND expires_at > ?
		FOR UPDATE
	`, email, code, string(t), now).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Consume expires the code so it cannot unlock a second action.
func (r OTPRepository) Consume(ctx context.Context, email string, t models.CodeType, now time.Time) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE dpx_otp_code SET expires_at = ? WHERE email = ? AND code_type = ?`,
		now, email, string(t))
	return err
}
