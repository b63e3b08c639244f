package handler

import (
	"context"
	"net/http"

	"github.com/forgo/questboard/api/internal/middleware"
	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/service"
)

// FriendshipHandler handles friendship workflow endpoints
type FriendshipHandler struct {
	friendshipService *service.FriendshipService
}

// NewFriendshipHandler creates a new friendship handler
func NewFriendshipHandler(friendshipService *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// FriendRequestBody is the request body for sending a friend request
type FriendRequestBody struct {
	ReceiverID string `json:"receiver_id"`
}

// SendRequest handles POST /v1/friendships - send a friend request
func (h *FriendshipHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req FriendRequestBody
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.ReceiverID == "" {
		WriteError(w, model.NewBadRequestError("receiver_id is required"))
		return
	}

	friendship, err := h.friendshipService.Request(r.Context(), heroID, req.ReceiverID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, friendship, map[string]string{
		"self":   "/v1/friendships/" + friendship.ID,
		"accept": "/v1/friendships/" + friendship.ID + "/accept",
		"reject": "/v1/friendships/" + friendship.ID + "/reject",
	})
}

// AcceptRequest handles POST /v1/friendships/{friendshipId}/accept
func (h *FriendshipHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.friendshipService.Accept)
}

// RejectRequest handles POST /v1/friendships/{friendshipId}/reject
func (h *FriendshipHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.friendshipService.Reject)
}

func (h *FriendshipHandler) resolve(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, friendshipID, actorID string) (*model.Friendship, error)) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	friendshipID := r.PathValue("friendshipId")
	if friendshipID == "" {
		WriteError(w, model.NewBadRequestError("friendship ID required"))
		return
	}

	friendship, err := fn(r.Context(), friendshipID, heroID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, friendship, map[string]string{
		"self":    "/v1/friendships/" + friendship.ID,
		"friends": "/v1/friends",
	})
}

// ListFriends handles GET /v1/friends - list accepted friends
func (h *FriendshipHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	friends, err := h.friendshipService.ListAcceptedFriends(r.Context(), heroID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list friends"))
		return
	}

	WriteCollection(w, http.StatusOK, friends, nil, map[string]string{
		"self": "/v1/friends",
	})
}

// ListPendingRequests handles GET /v1/friendships/pending - requests
// waiting on the caller's answer
func (h *FriendshipHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	heroID := middleware.GetHeroID(r.Context())
	if heroID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	pending, err := h.friendshipService.PendingForReceiver(r.Context(), heroID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list pending requests"))
		return
	}

	WriteCollection(w, http.StatusOK, pending, nil, map[string]string{
		"self": "/v1/friendships/pending",
	})
}
