package services

import (
	"context"
	"testing"
	"time"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{"user_id", "username", "email", "password_hash", "role"}

const (
	qUserByEmail = `SELECT user_id, username, email, password_hash, role FROM dpx_users WHERE email = \?`
	qUserByID    = `SELECT user_id, username, email, password_hash, role FROM dpx_users WHERE user_id = \?`
	qOTPValid    = `SELECT COUNT\(\*\) FROM dpx_otp_code WHERE email = \? AND otp_code = \? AND code_type = \? AND expires_at > \? FOR UPDATE`
	qOTPConsume  = `UPDATE dpx_otp_code SET expires_at = \?`
)

func testIssuer() TokenIssuer {
	return TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour, Now: clock}
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(qUserByEmail).WithArgs("ann@example.com").WillReturnRows(sqlmock.NewRows(userCols))

	_, _, err := AuthService{DB: db, Tokens: testIssuer()}.Login(context.Background(), "Ann@Example.com", "secret")
	assert.True(t, domain.IsNotFound(err), "err=%v", err)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(qUserByEmail).WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(7, "ann", "ann@example.com", hashed(t, "secret"), "customer"))

	_, _, err := AuthService{DB: db, Tokens: testIssuer()}.Login(context.Background(), "ann@example.com", "nope")
	assert.True(t, domain.IsUnauthorized(err), "err=%v", err)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(qUserByEmail).WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(7, "ann", "ann@example.com", hashed(t, "secret"), "employee"))

	issuer := testIssuer()
	token, u, err := AuthService{DB: db, Tokens: issuer}.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: 7, Username: "ann", Email: "ann@example.com", Role: "employee"}, id)
	assert.True(t, id.IsEmployee())
}

func TestLoginRequiresCredentials(t *testing.T) {
	_, _, err := AuthService{}.Login(context.Background(), "", "")
	assert.True(t, domain.IsValidation(err))
}

func TestTokenRejectsExpiredAndForeign(t *testing.T) {
	issuer := testIssuer()
	token, err := issuer.Issue(models.User{ID: 3, Username: "bo", Role: "customer"})
	require.NoError(t, err)

	later := issuer
	later.Now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	_, err = later.Parse(token)
	require.True(t, domain.IsUnauthorized(err))
	assert.Equal(t, "token expired", err.(domain.UnauthorizedError).Msg)

	foreign := issuer
	foreign.Secret = []byte("other")
	_, err = foreign.Parse(token)
	assert.True(t, domain.IsUnauthorized(err))

	_, err = issuer.Parse("garbage")
	assert.True(t, domain.IsUnauthorized(err))
}

func TestExpiredCodeIsConflict(t *testing.T) {
	cases := []struct {
		name     string
		codeType string
		call     func(AuthService) error
	}{
		{"register", "R", func(s AuthService) error {
			_, err := s.Register(context.Background(), RegisterInput{
				Username: "ann", Email: "ann@example.com", Password: "secret", Code: "123456",
			})
			return err
		}},
		{"reset password", "C", func(s AuthService) error {
			return s.ResetPassword(context.Background(), "ann@example.com", "123456", "fresh")
		}},
		{"delete account", "D", func(s AuthService) error {
			return s.DeleteAccount(context.Background(), "ann@example.com", "123456")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectBegin()
			mock.ExpectQuery(qOTPValid).WithArgs("ann@example.com", "123456", tc.codeType, fixedNow).
				WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
			mock.ExpectRollback()

			err := tc.call(AuthService{DB: db, Now: clock})
			require.True(t, domain.IsConflict(err), "err=%v", err)
			assert.False(t, domain.IsValidation(err))
			assert.Equal(t, "otp conflict: invalid or expired verification code", err.Error())
		})
	}
}

func TestRegisterConsumesCode(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(qOTPValid).WithArgs("ann@example.com", "123456", "R", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dpx_users WHERE email = \?`).WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO dpx_users").WithArgs("ann", sqlmock.AnyArg(), "ann@example.com", "customer").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(qOTPConsume).WithArgs(fixedNow, "ann@example.com", "R").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := AuthService{DB: db, Now: clock}.Register(context.Background(), RegisterInput{
		Username: "  ann ", Email: "Ann@example.com", Password: "secret", Code: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestRegisterTakenEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(qOTPValid).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dpx_users`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	_, err := AuthService{DB: db, Now: clock}.Register(context.Background(), RegisterInput{
		Username: "ann", Email: "ann@example.com", Password: "secret", Code: "123456",
	})
	assert.True(t, domain.IsConflict(err), "err=%v", err)
}

func TestDeleteAccountUnknown(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(qOTPValid).WithArgs("ann@example.com", "654321", "D", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec("DELETE FROM dpx_users WHERE email = \\?").WithArgs("ann@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := AuthService{DB: db, Now: clock}.DeleteAccount(context.Background(), "ann@example.com", "654321")
	assert.True(t, domain.IsNotFound(err), "err=%v", err)
}

func TestChangeUsernameReissuesToken(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(qUserByID).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(7, "ann", "ann@example.com", "x", "customer"))
	mock.ExpectExec("UPDATE dpx_users SET username = \\?").WithArgs("Ann Lee", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	issuer := testIssuer()
	token, err := AuthService{DB: db, Tokens: issuer}.ChangeUsername(context.Background(), domain.Identity{UserID: 7}, " Ann   Lee ")
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", id.Username)
}

func TestChangePasswordChecksOldPassword(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(qUserByID).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(7, "ann", "ann@example.com", hashed(t, "secret"), "customer"))

	err := AuthService{DB: db}.ChangePassword(context.Background(), domain.Identity{UserID: 7}, "wrong", "new-secret")
	assert.True(t, domain.IsUnauthorized(err), "err=%v", err)
}
