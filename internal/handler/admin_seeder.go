package handler

import (
	"net/http"

	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/service"
)

// AdminSeederHandler handles admin seeding endpoints
type AdminSeederHandler struct {
	seederService *service.SeederService
}

// NewAdminSeederHandler creates a new admin seeder handler
func NewAdminSeederHandler(seederService *service.SeederService) *AdminSeederHandler {
	return &AdminSeederHandler{seederService: seederService}
}

// SeedHeroes handles POST /v1/admin/seed/heroes
func (h *AdminSeederHandler) SeedHeroes(w http.ResponseWriter, r *http.Request) {
	var req service.SeedHeroesRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	if req.Count <= 0 {
		WriteError(w, model.NewBadRequestError("count must be greater than 0"))
		return
	}

	result, err := h.seederService.SeedHeroes(r.Context(), req)
	if err != nil {
		WriteError(w, model.NewInternalError("Failed to seed heroes: "+err.Error()))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":    "/v1/admin/seed/heroes",
		"cleanup": "/v1/admin/seed/cleanup",
	})
}

// SeedQuests handles POST /v1/admin/seed/quests
func (h *AdminSeederHandler) SeedQuests(w http.ResponseWriter, r *http.Request) {
	var req service.SeedQuestsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	if req.Count <= 0 {
		WriteError(w, model.NewBadRequestError("count must be greater than 0"))
		return
	}

	result, err := h.seederService.SeedQuests(r.Context(), req)
	if err != nil {
		WriteError(w, model.NewInternalError("Failed to seed quests: "+err.Error()))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":    "/v1/admin/seed/quests",
		"cleanup": "/v1/admin/seed/cleanup",
	})
}

// SeedFriendships handles POST /v1/admin/seed/friendships
func (h *AdminSeederHandler) SeedFriendships(w http.ResponseWriter, r *http.Request) {
	var req service.SeedFriendshipsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	if req.Count <= 0 {
		WriteError(w, model.NewBadRequestError("count must be greater than 0"))
		return
	}

	result, err := h.seederService.SeedFriendships(r.Context(), req)
	if err != nil {
		WriteError(w, model.NewInternalError("Failed to seed friendships: "+err.Error()))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":    "/v1/admin/seed/friendships",
		"cleanup": "/v1/admin/seed/cleanup",
	})
}

// SeedScenario handles POST /v1/admin/seed/scenario
func (h *AdminSeederHandler) SeedScenario(w http.ResponseWriter, r *http.Request) {
	var req service.SeedScenarioRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	if req.Scenario == "" {
		WriteError(w, model.NewBadRequestError("scenario is required"))
		return
	}

	result, err := h.seederService.SeedScenario(r.Context(), req)
	if err != nil {
		WriteError(w, model.NewInternalError("Failed to run scenario: "+err.Error()))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":    "/v1/admin/seed/scenario",
		"cleanup": "/v1/admin/seed/cleanup",
	})
}

// CleanupRequest defines the cleanup request body
type CleanupRequest struct {
	Prefix string `json:"prefix,omitempty"`
}

// Cleanup handles DELETE /v1/admin/seed/cleanup
func (h *AdminSeederHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	// Prefix can come from query param or request body
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		var req CleanupRequest
		_ = DecodeJSON(r, &req) // Ignore error, body is optional
		prefix = req.Prefix
	}

	if prefix == "" {
		prefix = "seed_"
	}

	result, err := h.seederService.Cleanup(r.Context(), prefix)
	if err != nil {
		WriteError(w, model.NewInternalError("Failed to cleanup: "+err.Error()))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/v1/admin/seed/cleanup",
	})
}

// ListScenarios handles GET /v1/admin/seed/scenarios
func (h *AdminSeederHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := []map[string]string{
		{
			"id":          "busy_board",
			"name":        "Busy Board",
			"description": "20 heroes and a marketplace of 40 open quests",
		},
		{
			"id":          "guild_of_friends",
			"name":        "Guild of Friends",
			"description": "10 heroes connected by accepted friendships",
		},
		{
			"id":          "veteran_party",
			"name":        "Veteran Party",
			"description": "5 high-level heroes with a completed quest history",
		},
	}

	WriteData(w, http.StatusOK, scenarios, map[string]string{
		"self": "/v1/admin/seed/scenarios",
	})
}
