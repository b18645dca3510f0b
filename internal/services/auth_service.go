package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var errInvalidCode = domain.ConflictError{Resource: "otp", Msg: "invalid or expired verification code"}

type AuthService struct {
	DB        *sql.DB
	Tokens    TokenIssuer
	Now       func() time.Time
	RequestID string
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Code     string
}

// withCode runs fn in a transaction only when code is a live code of type t
// for addr, and consumes the code on success.
func (s AuthService) withCode(ctx context.Context, addr, code string, t models.CodeType, fn func(tx *sql.Tx) error) error {
	return intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		otps := repositories.OTPRepository{DB: tx}
		now := s.now()
		ok, err := otps.IsValid(ctx, addr, code, t, now)
		if err != nil {
			return err
		}
		if !ok {
			return errInvalidCode
		}
		if err := fn(tx); err != nil {
			return err
		}
		return otps.Consume(ctx, addr, t, now)
	})
}

func (s AuthService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	addr := utils.NormalizeEmail(in.Email)
	username := utils.NormalizeSpace(in.Username)
	code := strings.TrimSpace(in.Code)
	if username == "" || addr == "" || in.Password == "" || code == "" {
		return 0, domain.ValidationError{Msg: "username, password, email, and OTP code are required"}
	}
	if !utils.IsValidEmail(addr) {
		return 0, domain.ValidationError{Field: "email", Msg: "invalid email format"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.withCode(ctx, addr, code, models.CodeRegister, func(tx *sql.Tx) error {
		users := repositories.UserRepository{DB: tx}
		exists, err := users.ExistsByEmail(ctx, addr)
		if err != nil {
			return err
		}
		if exists {
			return domain.ConflictError{Msg: "email is already in use"}
		}
		// A client-supplied role is ignored: self-registration never grants
		// employee, staff accounts are promoted in the database.
		id, err = users.Create(ctx, models.User{
			Username:     username,
			Email:        addr,
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
		})
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Msg: "email is already in use", Err: err}
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", "email="+utils.MaskEmail(addr))
	return id, nil
}

// Login returns a signed token for valid credentials.
func (s AuthService) Login(ctx context.Context, rawEmail, password string) (string, models.User, error) {
	addr := utils.NormalizeEmail(rawEmail)
	if addr == "" || password == "" {
		return "", models.User{}, domain.ValidationError{Msg: "email and password are required"}
	}
	if !utils.IsValidEmail(addr) {
		return "", models.User{}, domain.ValidationError{Field: "email", Msg: "invalid email format"}
	}

	u, err := repositories.UserRepository{DB: s.DB}.GetByEmail(ctx, addr)
	if err != nil {
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, domain.UnauthorizedError{Msg: "invalid password"}
	}

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return "", models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", "role="+u.Role)
	return token, u, nil
}

// ResetPassword sets a new password for the account after a C code check.
func (s AuthService) ResetPassword(ctx context.Context, rawEmail, code, newPassword string) error {
	addr := utils.NormalizeEmail(rawEmail)
	code = strings.TrimSpace(code)
	if addr == "" || code == "" || newPassword == "" {
		return domain.ValidationError{Msg: "email, OTP code and new password are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.withCode(ctx, addr, code, models.CodeChangePassword, func(tx *sql.Tx) error {
		users := repositories.UserRepository{DB: tx}
		if _, err := users.GetByEmail(ctx, addr); err != nil {
			return err
		}
		return users.UpdatePasswordByEmail(ctx, addr, string(hash))
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "reset_password", "email="+utils.MaskEmail(addr))
	return nil
}

// ChangeUsername renames the caller and returns a token carrying the new name.
func (s AuthService) ChangeUsername(ctx context.Context, id domain.Identity, username string) (string, error) {
	username = utils.NormalizeSpace(username)
	if username == "" {
		return "", domain.ValidationError{Field: "username", Msg: "is required"}
	}
	users := repositories.UserRepository{DB: s.DB}
	u, err := users.GetByID(ctx, id.UserID)
	if err != nil {
		return "", err
	}
	if err := users.UpdateUsername(ctx, u.ID, username); err != nil {
		return "", err
	}
	u.Username = username

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "auth", "change_username", "username updated")
	return token, nil
}

func (s AuthService) ChangePassword(ctx context.Context, id domain.Identity, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ValidationError{Msg: "old password and new password are required"}
	}
	users := repositories.UserRepository{DB: s.DB}
	u, err := users.GetByID(ctx, id.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.UnauthorizedError{Msg: "old password is incorrect"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := users.UpdatePasswordByID(ctx, u.ID, string(hash)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "change_password", "password updated")
	return nil
}

// DeleteAccount removes the account after a D code check.
func (s AuthService) DeleteAccount(ctx context.Context, rawEmail, code string) error {
	addr := utils.NormalizeEmail(rawEmail)
	code = strings.TrimSpace(code)
	if addr == "" || code == "" {
		return domain.ValidationError{Msg: "email and OTP code are required"}
	}
	err := s.withCode(ctx, addr, code, models.CodeDeleteAccount, func(tx *sql.Tx) error {
		n, err := repositories.UserRepository{DB: tx}.DeleteByEmail(ctx, addr)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "account", Err: sql.ErrNoRows}
		}
		return nil
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "delete_account", "email="+utils.MaskEmail(addr))
	return nil
}
