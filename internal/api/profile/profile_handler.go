package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillswaphq/skillswap/internal/api"
	"github.com/skillswaphq/skillswap/internal/api/auth"
)

// RateRequest represents the rate request body. A pointer distinguishes a
// missing or non-numeric rating from an explicit zero.
type RateRequest struct {
	Rating *float64 `json:"rating"`
}

// RateResponse represents the rate response body.
type RateResponse struct {
	Message string      `json:"message"`
	User    api.Account `json:"user"`
}

type ProfileHandler struct {
	profileService ProfileService
	logger         *slog.Logger
}

func NewProfileHandler(profileService ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// callerID extracts the authenticated caller's id injected by the
// Authenticate middleware.
func (h *ProfileHandler) callerID(r *http.Request) (uuid.UUID, bool) {
	raw, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetOwnProfile returns the caller's full record minus the password hash.
func (h *ProfileHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.callerID(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	account, err := h.profileService.GetOwnProfile(r.Context(), callerID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to fetch own profile", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, account)
}

// UpdateOwnProfile applies a partial update. Email and password keys in the
// payload never reach storage; the decode target has no fields for them.
func (h *ProfileHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.callerID(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var params api.UpdateProfileParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := h.profileService.UpdateOwnProfile(r.Context(), callerID, params)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to update profile", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, account)
}

// GetPublicProfile returns a third-party view of an account, gated by the
// privateAccount flag. No authentication required.
func (h *ProfileHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		return
	}

	account, err := h.profileService.GetPublicProfile(r.Context(), targetID)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrForbidden):
			api.ErrorResponse(w, r, http.StatusForbidden, "This profile is private")
		case errors.Is(err, api.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			h.logger.ErrorContext(r.Context(), "Failed to fetch public profile", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, account)
}

// FindMatches returns all public accounts with a reciprocal skill
// intersection with the caller.
func (h *ProfileHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.callerID(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	matches, err := h.profileService.FindMatches(r.Context(), callerID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to find matches", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, matches)
}

// RateUser overwrites the target account's rating.
func (h *ProfileHandler) RateUser(w http.ResponseWriter, r *http.Request) {
	raterID, ok := h.callerID(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		return
	}

	var req RateRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil || req.Rating == nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Rating must be a number between 0 and 5.")
		return
	}

	account, err := h.profileService.RateAccount(r.Context(), raterID, targetID, *req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfRating):
			api.ErrorResponse(w, r, http.StatusBadRequest, "You cannot rate yourself.")
		case errors.Is(err, ErrInvalidRating):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Rating must be a number between 0 and 5.")
		case errors.Is(err, api.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			h.logger.ErrorContext(r.Context(), "Failed to rate user", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, RateResponse{
		Message: "User rated successfully",
		User:    *account,
	})
}
