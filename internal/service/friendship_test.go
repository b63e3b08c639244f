package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
)

// ============================================================================
// Mock Friendship Repository
// ============================================================================

type mockFriendshipRepo struct {
	createRequestFunc          func(ctx context.Context, friendship *model.Friendship) error
	getFriendshipFunc          func(ctx context.Context, id string) (*model.Friendship, error)
	resolveFriendshipFunc      func(ctx context.Context, id string, status model.FriendshipStatus) (*model.Friendship, error)
	listAcceptedFunc           func(ctx context.Context, heroID string) ([]*model.Friendship, error)
	listPendingForReceiverFunc func(ctx context.Context, heroID string) ([]*model.Friendship, error)
}

func (m *mockFriendshipRepo) CreateRequest(ctx context.Context, friendship *model.Friendship) error {
	if m.createRequestFunc != nil {
		return m.createRequestFunc(ctx, friendship)
	}
	friendship.ID = "friendship:1"
	friendship.CreatedOn = time.Now()
	return nil
}

func (m *mockFriendshipRepo) GetFriendship(ctx context.Context, id string) (*model.Friendship, error) {
	if m.getFriendshipFunc != nil {
		return m.getFriendshipFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFriendshipRepo) ResolveFriendship(ctx context.Context, id string, status model.FriendshipStatus) (*model.Friendship, error) {
	if m.resolveFriendshipFunc != nil {
		return m.resolveFriendshipFunc(ctx, id, status)
	}
	return nil, nil
}

func (m *mockFriendshipRepo) ListAccepted(ctx context.Context, heroID string) ([]*model.Friendship, error) {
	if m.listAcceptedFunc != nil {
		return m.listAcceptedFunc(ctx, heroID)
	}
	return nil, nil
}

func (m *mockFriendshipRepo) ListPendingForReceiver(ctx context.Context, heroID string) ([]*model.Friendship, error) {
	if m.listPendingForReceiverFunc != nil {
		return m.listPendingForReceiverFunc(ctx, heroID)
	}
	return nil, nil
}

func friendshipFixture(id, senderID, receiverID string, status model.FriendshipStatus) *model.Friendship {
	return &model.Friendship{
		ID:         id,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     status,
		CreatedOn:  time.Now(),
		UpdatedOn:  time.Now(),
	}
}

func existingHeroes(ids ...string) *mockHeroRepo {
	return &mockHeroRepo{
		getHeroFunc: func(ctx context.Context, id string) (*model.Hero, error) {
			for _, known := range ids {
				if known == id {
					return heroFixture(id, 0, 0), nil
				}
			}
			return nil, nil
		},
	}
}

// ============================================================================
// Request Tests
// ============================================================================

func TestFriendshipService_Request_CreatesPending(t *testing.T) {
	t.Parallel()

	svc := NewFriendshipService(&mockFriendshipRepo{}, existingHeroes("hero:bob"))

	friendship, err := svc.Request(context.Background(), "hero:alice", "hero:bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if friendship.Status != model.FriendshipStatusPending {
		t.Errorf("expected pending, got %s", friendship.Status)
	}
	if friendship.SenderID != "hero:alice" || friendship.ReceiverID != "hero:bob" {
		t.Errorf("wrong parties: %s -> %s", friendship.SenderID, friendship.ReceiverID)
	}
}

func TestFriendshipService_Request_SelfRejected(t *testing.T) {
	t.Parallel()

	svc := NewFriendshipService(&mockFriendshipRepo{}, existingHeroes("hero:alice"))

	_, err := svc.Request(context.Background(), "hero:alice", "hero:alice")
	if !errors.Is(err, ErrCannotBefriendSelf) {
		t.Errorf("expected ErrCannotBefriendSelf, got %v", err)
	}
}

func TestFriendshipService_Request_UnknownReceiver(t *testing.T) {
	t.Parallel()

	svc := NewFriendshipService(&mockFriendshipRepo{}, existingHeroes())

	_, err := svc.Request(context.Background(), "hero:alice", "hero:ghost")
	if !errors.Is(err, ErrHeroNotFound) {
		t.Errorf("expected ErrHeroNotFound, got %v", err)
	}
}

func TestFriendshipService_Request_DuplicatePairRejected(t *testing.T) {
	t.Parallel()

	repo := &mockFriendshipRepo{
		createRequestFunc: func(ctx context.Context, friendship *model.Friendship) error {
			return database.ErrDuplicate
		},
	}
	svc := NewFriendshipService(repo, existingHeroes("hero:bob"))

	_, err := svc.Request(context.Background(), "hero:alice", "hero:bob")
	if !errors.Is(err, ErrFriendshipExists) {
		t.Errorf("expected ErrFriendshipExists, got %v", err)
	}
}

// ============================================================================
// Accept / Reject Tests
// ============================================================================

func TestFriendshipService_Accept(t *testing.T) {
	t.Parallel()

	pending := friendshipFixture("friendship:1", "hero:alice", "hero:bob", model.FriendshipStatusPending)
	repo := &mockFriendshipRepo{
		getFriendshipFunc: func(ctx context.Context, id string) (*model.Friendship, error) { return pending, nil },
		resolveFriendshipFunc: func(ctx context.Context, id string, status model.FriendshipStatus) (*model.Friendship, error) {
			pending.Status = status
			pending.UpdatedOn = time.Now()
			return pending, nil
		},
	}
	svc := NewFriendshipService(repo, existingHeroes("hero:alice", "hero:bob"))

	accepted, err := svc.Accept(context.Background(), "friendship:1", "hero:bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != model.FriendshipStatusAccepted {
		t.Errorf("expected accepted, got %s", accepted.Status)
	}
}

func TestFriendshipService_Accept_SenderCannotAnswerOwnRequest(t *testing.T) {
	t.Parallel()

	pending := friendshipFixture("friendship:1", "hero:alice", "hero:bob", model.FriendshipStatusPending)
	repo := &mockFriendshipRepo{
		getFriendshipFunc: func(ctx context.Context, id string) (*model.Friendship, error) { return pending, nil },
	}
	svc := NewFriendshipService(repo, existingHeroes("hero:alice", "hero:bob"))

	_, err := svc.Accept(context.Background(), "friendship:1", "hero:alice")
	if !errors.Is(err, ErrNotFriendshipReceiver) {
		t.Errorf("expected ErrNotFriendshipReceiver, got %v", err)
	}
}

func TestFriendshipService_Resolve_Guards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		friendship *model.Friendship
		actor      string
		want       error
	}{
		{"missing", nil, "hero:bob", ErrFriendshipNotFound},
		{"third party", friendshipFixture("friendship:1", "hero:alice", "hero:bob", model.FriendshipStatusPending), "hero:carol", ErrNotFriendshipReceiver},
		{"already accepted", friendshipFixture("friendship:1", "hero:alice", "hero:bob", model.FriendshipStatusAccepted), "hero:bob", ErrFriendshipResolved},
		{"already rejected", friendshipFixture("friendship:1", "hero:alice", "hero:bob", model.FriendshipStatusRejected), "hero:bob", ErrFriendshipResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockFriendshipRepo{
				getFriendshipFunc: func(ctx context.Context, id string) (*model.Friendship, error) { return tt.friendship, nil },
			}
			svc := NewFriendshipService(repo, existingHeroes())

			_, err := svc.Reject(context.Background(), "friendship:1", tt.actor)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFriendshipService_Accept_LosesResolveRace(t *testing.T) {
	t.Parallel()

	// Both read PENDING; the conditional update lets only one resolution win.
	pending := friendshipFixture("friendship:1", "hero:alice", "hero:bob", model.FriendshipStatusPending)
	repo := &mockFriendshipRepo{
		getFriendshipFunc: func(ctx context.Context, id string) (*model.Friendship, error) { return pending, nil },
		resolveFriendshipFunc: func(ctx context.Context, id string, status model.FriendshipStatus) (*model.Friendship, error) {
			return nil, database.ErrConflict
		},
	}
	svc := NewFriendshipService(repo, existingHeroes("hero:alice", "hero:bob"))

	_, err := svc.Accept(context.Background(), "friendship:1", "hero:bob")
	if !errors.Is(err, ErrFriendshipResolved) {
		t.Errorf("expected ErrFriendshipResolved for the losing resolve, got %v", err)
	}
}

// ============================================================================
// Listing Tests
// ============================================================================

func TestFriendshipService_ListAcceptedFriends_ReturnsOtherParty(t *testing.T) {
	t.Parallel()

	repo := &mockFriendshipRepo{
		listAcceptedFunc: func(ctx context.Context, heroID string) ([]*model.Friendship, error) {
			return []*model.Friendship{
				friendshipFixture("friendship:1", "hero:alice", "hero:bob", model.FriendshipStatusAccepted),
				friendshipFixture("friendship:2", "hero:carol", "hero:alice", model.FriendshipStatusAccepted),
			}, nil
		},
	}
	svc := NewFriendshipService(repo, existingHeroes("hero:bob", "hero:carol"))

	friends, err := svc.ListAcceptedFriends(context.Background(), "hero:alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(friends))
	}
	if friends[0].HeroID != "hero:bob" {
		t.Errorf("expected hero:bob as other party, got %s", friends[0].HeroID)
	}
	if friends[1].HeroID != "hero:carol" {
		t.Errorf("expected hero:carol as other party, got %s", friends[1].HeroID)
	}
}

func TestFriendshipService_RequestAcceptBecomesMutual(t *testing.T) {
	t.Parallel()

	// End-to-end over the mocks: request, accept, then both sides list
	// each other.
	var stored *model.Friendship
	repo := &mockFriendshipRepo{
		createRequestFunc: func(ctx context.Context, friendship *model.Friendship) error {
			friendship.ID = "friendship:1"
			friendship.CreatedOn = time.Now()
			stored = friendship
			return nil
		},
		getFriendshipFunc: func(ctx context.Context, id string) (*model.Friendship, error) { return stored, nil },
		resolveFriendshipFunc: func(ctx context.Context, id string, status model.FriendshipStatus) (*model.Friendship, error) {
			stored.Status = status
			stored.UpdatedOn = time.Now()
			return stored, nil
		},
		listAcceptedFunc: func(ctx context.Context, heroID string) ([]*model.Friendship, error) {
			if stored != nil && stored.Status == model.FriendshipStatusAccepted && stored.Involves(heroID) {
				return []*model.Friendship{stored}, nil
			}
			return nil, nil
		},
	}
	svc := NewFriendshipService(repo, existingHeroes("hero:alice", "hero:bob"))

	if _, err := svc.Request(context.Background(), "hero:alice", "hero:bob"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "friendship:1", "hero:bob"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	for _, actor := range []string{"hero:alice", "hero:bob"} {
		friends, err := svc.ListAcceptedFriends(context.Background(), actor)
		if err != nil {
			t.Fatalf("list failed for %s: %v", actor, err)
		}
		if len(friends) != 1 {
			t.Errorf("expected %s to see one friend, got %d", actor, len(friends))
		}
	}
}
