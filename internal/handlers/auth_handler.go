package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"greenmarket/internal/models"
	"greenmarket/internal/services"
)

type AuthHandler struct {
	users  *services.UserService
	auth   *services.AuthService
	logger zerolog.Logger
}

func NewAuthHandler(users *services.UserService, auth *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, logger: logger}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	user, err := h.users.Signup(&req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, "Account request submitted. Await admin approval.", user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	user, err := h.users.Authenticate(&req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondWithToken(w, http.StatusOK, "Login successful.", token, user)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.users.ForgotPassword(req.Email); err != nil {
		handleError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "OTP sent to your email.", nil)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.users.VerifyOTP(req.Email, req.OTP); err != nil {
		handleError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "OTP verified. You may now reset your password.", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.users.ResetPassword(req.Email, req.Password); err != nil {
		handleError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Password reset successful.", nil)
}
