package handler

import (
	"net/http"

	"github.com/forgo/questboard/api/internal/middleware"
	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/service"
)

// QuestHandler handles quest lifecycle endpoints
type QuestHandler struct {
	questService *service.QuestService
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(questService *service.QuestService) *QuestHandler {
	return &QuestHandler{questService: questService}
}

// CreateQuest handles POST /v1/quests - post a new quest
func (h *QuestHandler) CreateQuest(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateQuestRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	quest, err := h.questService.Create(r.Context(), heroID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, quest, map[string]string{
		"self":   "/v1/quests/" + quest.ID,
		"accept": "/v1/quests/" + quest.ID + "/accept",
	})
}

// GetQuest handles GET /v1/quests/{questId} - get a single quest
func (h *QuestHandler) GetQuest(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	questID := r.PathValue("questId")
	if questID == "" {
		WriteError(w, model.NewBadRequestError("quest ID required"))
		return
	}

	quest, err := h.questService.Get(r.Context(), questID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, quest, map[string]string{
		"self": "/v1/quests/" + quest.ID,
	})
}

// ListQuests handles GET /v1/quests?filter= - list the actor's quest board view
func (h *QuestHandler) ListQuests(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	filter := model.QuestFilter(r.URL.Query().Get("filter"))

	quests, err := h.questService.List(r.Context(), heroID, filter)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, quests, nil, map[string]string{
		"self": "/v1/quests",
	})
}

// AcceptQuest handles POST /v1/quests/{questId}/accept - take on an open quest
func (h *QuestHandler) AcceptQuest(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	questID := r.PathValue("questId")
	if questID == "" {
		WriteError(w, model.NewBadRequestError("quest ID required"))
		return
	}

	quest, err := h.questService.Accept(r.Context(), questID, heroID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, quest, map[string]string{
		"self":     "/v1/quests/" + quest.ID,
		"complete": "/v1/quests/" + quest.ID + "/complete",
	})
}

// CompleteQuest handles POST /v1/quests/{questId}/complete - finish a quest
// and collect its reward
func (h *QuestHandler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	questID := r.PathValue("questId")
	if questID == "" {
		WriteError(w, model.NewBadRequestError("quest ID required"))
		return
	}

	completion, err := h.questService.Complete(r.Context(), questID, heroID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, completion, map[string]string{
		"self": "/v1/quests/" + completion.Quest.ID,
		"hero": "/v1/profile",
	})
}

// CancelQuest handles POST /v1/quests/{questId}/cancel - withdraw an open quest
func (h *QuestHandler) CancelQuest(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	questID := r.PathValue("questId")
	if questID == "" {
		WriteError(w, model.NewBadRequestError("quest ID required"))
		return
	}

	quest, err := h.questService.Cancel(r.Context(), questID, heroID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, quest, map[string]string{
		"self": "/v1/quests/" + quest.ID,
	})
}
