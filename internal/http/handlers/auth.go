package handlers

import (
	"net/http"

	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/http/middleware"
	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
)

func authService(c *gin.Context) services.AuthService {
	d := current()
	return services.AuthService{DB: d.DB, Tokens: d.Tokens, Now: d.Now, RequestID: requestID(c)}
}

type sendCodeRequest struct {
	Email    string `json:"email"`
	CodeType string `json:"code_type"`
}

// POST /api/verification/send-code
func SendCode(c *gin.Context) {
	var req sendCodeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	d := current()
	svc := services.OTPService{
		DB:        d.DB,
		Mailer:    d.Mailer,
		Limiter:   d.Limiter,
		TTL:       d.OTPTTL,
		Now:       d.Now,
		RequestID: requestID(c),
	}
	if err := svc.RequestCode(c.Request.Context(), req.Email, models.CodeType(req.CodeType)); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Verification code sent successfully", nil)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	OTPCode  string `json:"otpCode"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := authService(c).Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Code:     req.OTPCode,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "User registered successfully", gin.H{"user_id": id})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, u, err := authService(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTPCode     string `json:"otpCode"`
	NewPassword string `json:"newPassword"`
}

// POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := authService(c).ResetPassword(c.Request.Context(), req.Email, req.OTPCode, req.NewPassword); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password reset successfully", nil)
}

type changeUsernameRequest struct {
	Username string `json:"username"`
}

// PUT /api/auth/change-username
func ChangeUsername(c *gin.Context) {
	var req changeUsernameRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, _ := middleware.GetIdentity(c)
	token, err := authService(c).ChangeUsername(c.Request.Context(), id, req.Username)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Username updated successfully", gin.H{"token": token})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// PUT /api/auth/change-password
func ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, _ := middleware.GetIdentity(c)
	if err := authService(c).ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password updated successfully", nil)
}

type deleteAccountRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otpCode"`
}

// DELETE /api/auth/delete-account
func DeleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := authService(c).DeleteAccount(c.Request.Context(), req.Email, req.OTPCode); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Account deleted successfully", nil)
}
