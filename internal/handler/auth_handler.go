package handler

import (
	"errors"
	"net/http"

	"github.com/seekers/backend/internal/service"
)

// AuthHandler handles admin login.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login は POST /api/auth/login を処理する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		writeServiceError(w, err, "login")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
