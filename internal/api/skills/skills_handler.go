package skills

import (
	"log/slog"
	"net/http"

	"github.com/skillswaphq/skillswap/internal/api"
)

// SkillsResponse represents the skill list response body.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

type SkillsHandler struct {
	skillsService SkillsService
	logger        *slog.Logger
}

func NewSkillsHandler(skillsService SkillsService, logger *slog.Logger) *SkillsHandler {
	return &SkillsHandler{
		skillsService: skillsService,
		logger:        logger,
	}
}

// ListSkills returns every distinct offered skill across all accounts.
func (h *SkillsHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	names, err := h.skillsService.GetAllSkills(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list skills", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error.")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, SkillsResponse{Skills: names})
}
