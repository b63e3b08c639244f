package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
)

// FriendshipRepository handles friendship data access
type FriendshipRepository struct {
	db database.Database
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db database.Database) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// CreateRequest inserts a pending friendship after checking, inside the
// same transaction, that no pending or accepted record exists for the
// unordered pair. The check THROWs on a match so two concurrent requests
// for the same pair cannot both insert. Rejected records do not block a
// fresh request.
func (r *FriendshipRepository) CreateRequest(ctx context.Context, friendship *model.Friendship) error {
	pair := map[string]interface{}{
		"sender_id":   friendship.SenderID,
		"receiver_id": friendship.ReceiverID,
	}

	tb := database.NewTxBuilder()
	tb.Add(`LET $existing = (SELECT id FROM friendship
			WHERE status IN ["pending", "accepted"]
				AND ((sender_id = type::record($sender_id) AND receiver_id = type::record($receiver_id))
					OR (sender_id = type::record($receiver_id) AND receiver_id = type::record($sender_id))))`, pair)
	tb.AddRaw(`IF array::len($existing) > 0 { THROW "friendship already exists" }`)
	tb.Add(`CREATE friendship CONTENT {
			sender_id: type::record($sender_id),
			receiver_id: type::record($receiver_id),
			status: "pending",
			created_on: time::now(),
			updated_on: time::now()
		}`, pair)

	query, vars := tb.Build()
	if err := r.db.Execute(ctx, query, vars); err != nil {
		if errors.Is(err, database.ErrDuplicate) || isUniqueConstraintError(err) {
			return fmt.Errorf("%w: friendship already exists", database.ErrDuplicate)
		}
		return err
	}

	// Re-read the inserted record to fill in the generated fields
	created, err := r.getPendingByPair(ctx, friendship.SenderID, friendship.ReceiverID)
	if err != nil {
		return err
	}
	if created != nil {
		friendship.ID = created.ID
		friendship.Status = created.Status
		friendship.CreatedOn = created.CreatedOn
		friendship.UpdatedOn = created.UpdatedOn
	}
	return nil
}

// GetFriendship retrieves a friendship by ID
func (r *FriendshipRepository) GetFriendship(ctx context.Context, id string) (*model.Friendship, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	friendship, err := parseFriendshipResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return friendship, nil
}

// ResolveFriendship flips a pending friendship to a terminal status. The
// WHERE clause makes resolution single-shot: a request already answered
// no longer matches and the caller gets ErrConflict.
func (r *FriendshipRepository) ResolveFriendship(ctx context.Context, id string, status model.FriendshipStatus) (*model.Friendship, error) {
	query := `
		UPDATE type::record($id) SET
			status = $status,
			updated_on = time::now()
		WHERE status = "pending"
	`
	vars := map[string]interface{}{
		"id":     id,
		"status": status,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	updated, err := unwrapSingleResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrConflict
		}
		return nil, err
	}

	return friendshipFromRecord(updated)
}

// ListAccepted returns accepted friendships involving the hero on either side
func (r *FriendshipRepository) ListAccepted(ctx context.Context, heroID string) ([]*model.Friendship, error) {
	query := `
		SELECT * FROM friendship
		WHERE status = "accepted"
			AND (sender_id = type::record($hero_id) OR receiver_id = type::record($hero_id))
		ORDER BY updated_on DESC
	`
	return r.list(ctx, query, map[string]interface{}{"hero_id": heroID})
}

// ListPendingForReceiver returns requests waiting on the hero's answer
func (r *FriendshipRepository) ListPendingForReceiver(ctx context.Context, heroID string) ([]*model.Friendship, error) {
	query := `
		SELECT * FROM friendship
		WHERE status = "pending" AND receiver_id = type::record($hero_id)
		ORDER BY created_on DESC
	`
	return r.list(ctx, query, map[string]interface{}{"hero_id": heroID})
}

func (r *FriendshipRepository) getPendingByPair(ctx context.Context, senderID, receiverID string) (*model.Friendship, error) {
	query := `
		SELECT * FROM friendship
		WHERE status = "pending"
			AND sender_id = type::record($sender_id)
			AND receiver_id = type::record($receiver_id)
		ORDER BY created_on DESC
		LIMIT 1
	`
	vars := map[string]interface{}{
		"sender_id":   senderID,
		"receiver_id": receiverID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	friendship, err := parseFriendshipResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return friendship, nil
}

func (r *FriendshipRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Friendship, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, ok := extractQueryResults(result)
	if !ok {
		return []*model.Friendship{}, nil
	}

	friendships := make([]*model.Friendship, 0, len(records))
	for _, record := range records {
		data, ok := record.(map[string]interface{})
		if !ok {
			continue
		}
		friendship, err := friendshipFromRecord(data)
		if err != nil {
			return nil, err
		}
		friendships = append(friendships, friendship)
	}

	return friendships, nil
}

func parseFriendshipResult(result interface{}) (*model.Friendship, error) {
	data, err := unwrapSingleResult(result)
	if err != nil {
		return nil, err
	}
	return friendshipFromRecord(data)
}

func friendshipFromRecord(data map[string]interface{}) (*model.Friendship, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if sender, ok := data["sender_id"]; ok {
		data["sender_id"] = convertSurrealID(sender)
	}
	if receiver, ok := data["receiver_id"]; ok {
		data["receiver_id"] = convertSurrealID(receiver)
	}

	var friendship model.Friendship
	if err := unmarshalRecord(data, &friendship); err != nil {
		return nil, err
	}
	return &friendship, nil
}
