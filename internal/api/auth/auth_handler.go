package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillswaphq/skillswap/internal/api"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a new account and returns a confirmation message.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Please fill all required fields.")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Please fill all required fields.")
		return
	}

	err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password, req.Location, req.Role)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "User already exists.")
			return
		}
		h.logger.ErrorContext(r.Context(), "Registration failed", slog.Any("error", err), slog.String("email", req.Email))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]string{
		"message": "User registered successfully!",
	})
}

// Login verifies credentials and returns a bearer token with a public
// projection of the account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Please fill all required fields.")
		return
	}

	if req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Please fill all required fields.")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// One generic message for unknown email and wrong password alike.
		if errors.Is(err, api.ErrUnauthenticated) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid credentials.")
			return
		}
		h.logger.ErrorContext(r.Context(), "Login failed", slog.Any("error", err), slog.String("email", req.Email))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, LoginResponse{
		Token: token,
		User:  *user,
	})
}
