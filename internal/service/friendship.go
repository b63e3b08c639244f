package service

import (
	"context"
	"errors"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
)

// FriendshipRepositoryInterface defines the repository interface for friendships
type FriendshipRepositoryInterface interface {
	// CreateRequest inserts a pending friendship after an atomic check that
	// no pending or accepted record exists for the unordered pair; returns
	// database.ErrDuplicate when one does.
	CreateRequest(ctx context.Context, friendship *model.Friendship) error
	GetFriendship(ctx context.Context, id string) (*model.Friendship, error)
	// ResolveFriendship flips PENDING to the given terminal status with a
	// conditional update; returns database.ErrConflict when already resolved.
	ResolveFriendship(ctx context.Context, id string, status model.FriendshipStatus) (*model.Friendship, error)
	ListAccepted(ctx context.Context, heroID string) ([]*model.Friendship, error)
	ListPendingForReceiver(ctx context.Context, heroID string) ([]*model.Friendship, error)
}

// FriendshipService handles the friendship request workflow
type FriendshipService struct {
	repo   FriendshipRepositoryInterface
	heroes HeroRepositoryInterface
}

// NewFriendshipService creates a new friendship service
func NewFriendshipService(repo FriendshipRepositoryInterface, heroes HeroRepositoryInterface) *FriendshipService {
	return &FriendshipService{repo: repo, heroes: heroes}
}

// Request sends a friend request from sender to receiver. At most one
// pending or accepted friendship may exist per unordered pair; a rejected
// record does not block a fresh request.
func (s *FriendshipService) Request(ctx context.Context, senderID, receiverID string) (*model.Friendship, error) {
	if senderID == receiverID {
		return nil, ErrCannotBefriendSelf
	}

	receiver, err := s.heroes.GetHero(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrHeroNotFound
	}

	friendship := &model.Friendship{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     model.FriendshipStatusPending,
	}

	if err := s.repo.CreateRequest(ctx, friendship); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrFriendshipExists
		}
		return nil, err
	}

	return friendship, nil
}

// Accept resolves a pending request. Only the receiver may accept; the
// sender cannot answer their own request.
func (s *FriendshipService) Accept(ctx context.Context, friendshipID, actorID string) (*model.Friendship, error) {
	return s.resolve(ctx, friendshipID, actorID, model.FriendshipStatusAccepted)
}

// Reject resolves a pending request with the same guard as Accept
func (s *FriendshipService) Reject(ctx context.Context, friendshipID, actorID string) (*model.Friendship, error) {
	return s.resolve(ctx, friendshipID, actorID, model.FriendshipStatusRejected)
}

func (s *FriendshipService) resolve(ctx context.Context, friendshipID, actorID string, status model.FriendshipStatus) (*model.Friendship, error) {
	friendship, err := s.repo.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if friendship == nil {
		return nil, ErrFriendshipNotFound
	}

	if friendship.ReceiverID != actorID {
		return nil, ErrNotFriendshipReceiver
	}
	if friendship.Status.IsResolved() {
		return nil, ErrFriendshipResolved
	}

	resolved, err := s.repo.ResolveFriendship(ctx, friendshipID, status)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrFriendshipResolved
		}
		return nil, err
	}

	return resolved, nil
}

// ListAcceptedFriends returns the opposite party of every accepted
// friendship involving the actor.
func (s *FriendshipService) ListAcceptedFriends(ctx context.Context, actorID string) ([]model.Friend, error) {
	friendships, err := s.repo.ListAccepted(ctx, actorID)
	if err != nil {
		return nil, err
	}

	friends := make([]model.Friend, 0, len(friendships))
	for _, f := range friendships {
		otherID := f.OtherParty(actorID)

		friend := model.Friend{HeroID: otherID, Since: f.UpdatedOn}
		if hero, err := s.heroes.GetHero(ctx, otherID); err == nil && hero != nil {
			friend.Username = hero.Username
		}
		friends = append(friends, friend)
	}

	return friends, nil
}

// PendingForReceiver returns requests waiting on the actor's answer
func (s *FriendshipService) PendingForReceiver(ctx context.Context, actorID string) ([]*model.Friendship, error) {
	return s.repo.ListPendingForReceiver(ctx, actorID)
}
