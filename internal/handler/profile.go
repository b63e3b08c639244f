package handler

import (
	"net/http"

	"github.com/forgo/questboard/api/internal/middleware"
	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/service"
)

// ProfileHandler handles hero profile endpoints
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetSheet handles GET /v1/profile - the caller's hero sheet with level
// title and progression
func (h *ProfileHandler) GetSheet(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	sheet, err := h.profileService.GetSheet(r.Context(), heroID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sheet, map[string]string{
		"self": "/v1/profile",
	})
}

// UpdateTheme handles PUT /v1/profile/theme
func (h *ProfileHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.UpdateThemeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	hero, err := h.profileService.SetTheme(r.Context(), heroID, req.Theme)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, hero, map[string]string{
		"self": "/v1/profile",
	})
}

// UpdateClass handles PUT /v1/profile/class
func (h *ProfileHandler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.UpdateClassRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	hero, err := h.profileService.SetClass(r.Context(), heroID, req.HeroClass)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, hero, map[string]string{
		"self": "/v1/profile",
	})
}

// MarkTutorialSeen handles POST /v1/profile/tutorial-seen
func (h *ProfileHandler) MarkTutorialSeen(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	hero, err := h.profileService.MarkTutorialSeen(r.Context(), heroID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, hero, map[string]string{
		"self": "/v1/profile",
	})
}
