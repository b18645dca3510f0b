package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, string, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLimiter) MarkSent(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

const qUserExists = `SELECT COUNT\(\*\) FROM dpx_users WHERE email = \?`

func fixedCode() (string, error) { return "482913", nil }

func TestGenerateOTPFormat(t *testing.T) {
	re := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}

func TestRequestCodeValidatesInput(t *testing.T) {
	svc := OTPService{}
	err := svc.RequestCode(context.Background(), "not-an-email", models.CodeRegister)
	assert.True(t, domain.IsValidation(err))

	err = svc.RequestCode(context.Background(), "ann@example.com", models.CodeType("X"))
	assert.True(t, domain.IsValidation(err))
}

func TestRequestRegisterCodeForTakenEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(qUserExists).WithArgs("ann@example.com").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	err := OTPService{DB: db}.RequestCode(context.Background(), "ann@example.com", models.CodeRegister)
	assert.True(t, domain.IsConflict(err), "err=%v", err)
}

func TestRequestResetCodeForUnknownAccount(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(qUserExists).WithArgs("ann@example.com").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	err := OTPService{DB: db}.RequestCode(context.Background(), "ann@example.com", models.CodeChangePassword)
	assert.True(t, domain.IsNotFound(err), "err=%v", err)
}

func TestRequestCodeStoresAndMails(t *testing.T) {
	db, sqlMock := newMock(t)
	sqlMock.ExpectQuery(qUserExists).WithArgs("ann@example.com").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	sqlMock.ExpectExec("INSERT INTO dpx_otp_code").
		WithArgs("ann@example.com", "482913", "R", fixedNow.Add(5*time.Minute)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sender := new(MockSender)
	sender.On("Send", mock.Anything, "ann@example.com", "Welcome to DPX Cruise - Verify Your Email",
		mock.MatchedBy(func(body string) bool { return strings.Contains(body, "482913") && strings.Contains(body, "5 minutes") })).
		Return(nil)
	limiter := new(MockLimiter)
	limiter.On("Allow", mock.Anything, "ann@example.com:R").Return(true, "", nil)
	limiter.On("MarkSent", mock.Anything, "ann@example.com:R").Return(nil)

	svc := OTPService{DB: db, Mailer: sender, Limiter: limiter, Now: clock, Generate: fixedCode}
	require.NoError(t, svc.RequestCode(context.Background(), " Ann@Example.com ", models.CodeRegister))
	sender.AssertExpectations(t)
	limiter.AssertExpectations(t)
}

func TestRequestCodeRateLimited(t *testing.T) {
	db, sqlMock := newMock(t)
	sqlMock.ExpectQuery(qUserExists).WithArgs("ann@example.com").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	limiter := new(MockLimiter)
	limiter.On("Allow", mock.Anything, "ann@example.com:D").Return(false, "please wait a minute before requesting another code", nil)
	sender := new(MockSender)

	err := OTPService{DB: db, Mailer: sender, Limiter: limiter}.RequestCode(context.Background(), "ann@example.com", models.CodeDeleteAccount)
	assert.True(t, domain.IsRateLimited(err), "err=%v", err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestCodeLimiterOutageFailsOpen(t *testing.T) {
	db, sqlMock := newMock(t)
	sqlMock.ExpectQuery(qUserExists).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	sqlMock.ExpectExec("INSERT INTO dpx_otp_code").WillReturnResult(sqlmock.NewResult(1, 1))

	limiter := new(MockLimiter)
	limiter.On("Allow", mock.Anything, "ann@example.com:C").Return(false, "", errors.New("connection refused"))
	limiter.On("MarkSent", mock.Anything, "ann@example.com:C").Return(errors.New("connection refused"))
	sender := new(MockSender)
	sender.On("Send", mock.Anything, "ann@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := OTPService{DB: db, Mailer: sender, Limiter: limiter, Now: clock, Generate: fixedCode}
	require.NoError(t, svc.RequestCode(context.Background(), "ann@example.com", models.CodeChangePassword))
}

func TestRequestCodeMailFailure(t *testing.T) {
	db, sqlMock := newMock(t)
	sqlMock.ExpectQuery(qUserExists).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	sqlMock.ExpectExec("INSERT INTO dpx_otp_code").WillReturnResult(sqlmock.NewResult(1, 1))

	sender := new(MockSender)
	sender.On("Send", mock.Anything, "ann@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	err := OTPService{DB: db, Mailer: sender, Now: clock, Generate: fixedCode}.
		RequestCode(context.Background(), "ann@example.com", models.CodeRegister)
	assert.True(t, domain.IsInternal(err), "err=%v", err)
}
