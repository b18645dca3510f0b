package models

import "time"

type User struct {
	ID           int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// CodeType selects which auth action an OTP unlocks.
type CodeType string

const (
	CodeRegister       CodeType = "R"
	CodeChangePassword CodeType = "C"
	CodeDeleteAccount  CodeType = "D"
)

// Valid reports whether t is one of the known code types.
func (t CodeType) Valid() bool {
	switch t {
	case CodeRegister, CodeChangePassword, CodeDeleteAccount:
		return true
	}
	return false
}

type OTPCode struct {
	Email     string
	Code      string
	Type      CodeType
	ExpiresAt time.Time
}
