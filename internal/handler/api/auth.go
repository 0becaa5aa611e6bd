// Package api implements the JSON API used by the POS front ends. Handlers
// decode and validate requests, call the services, and map their errors
// through handler.ErrorResponse. Permission checks live in the services.
package api

import (
	"net/http"

	"github.com/dukerupert/tabletab/internal/handler"
	"github.com/dukerupert/tabletab/internal/service"
)

// AuthHandler handles staff login
type AuthHandler struct {
	users service.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := handler.DecodeJSON(r, "api.auth.login", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	session, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, session)
}
