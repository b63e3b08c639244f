package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
)

// QuestRepository handles quest data access
type QuestRepository struct {
	db database.Database
}

// NewQuestRepository creates a new quest repository
func NewQuestRepository(db database.Database) *QuestRepository {
	return &QuestRepository{db: db}
}

// CreateQuest creates a new quest
func (r *QuestRepository) CreateQuest(ctx context.Context, quest *model.Quest) error {
	query := `
		CREATE quest CONTENT {
			title: $title,
			description: $description,
			reward: $reward,
			experience: $experience,
			difficulty: $difficulty,
			category: $category,
			status: $status,
			creator_id: type::record($creator_id),
			receiver_id: IF $receiver_id IS NOT NULL THEN type::record($receiver_id) ELSE NONE END,
			location: IF $location IS NOT NULL THEN $location ELSE NONE END,
			due_date: IF $due_date IS NOT NULL THEN $due_date ELSE NONE END,
			is_urgent: $is_urgent,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":       quest.Title,
		"description": quest.Description,
		"reward":      quest.Reward,
		"experience":  quest.Experience,
		"difficulty":  quest.Difficulty,
		"category":    quest.Category,
		"status":      quest.Status,
		"creator_id":  quest.CreatorID,
		"receiver_id": ptrToNone(quest.ReceiverID),
		"location":    ptrToNone(quest.Location),
		"is_urgent":   quest.IsUrgent,
	}
	if quest.DueDate != nil {
		vars["due_date"] = *quest.DueDate
	} else {
		vars["due_date"] = nil
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := unwrapSingleResult(result)
	if err != nil {
		return err
	}

	quest.ID = convertSurrealID(created["id"])
	if t := getTime(created, "created_on"); t != nil {
		quest.CreatedOn = *t
	}
	if t := getTime(created, "updated_on"); t != nil {
		quest.UpdatedOn = *t
	}
	return nil
}

// GetQuest retrieves a quest by ID
func (r *QuestRepository) GetQuest(ctx context.Context, id string) (*model.Quest, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	quest, err := parseQuestResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return quest, nil
}

// AcceptQuest flips an open quest to in_progress with the actor as
// receiver. The WHERE clause is the concurrency arbiter: of two
// simultaneous accepts exactly one matches status = "open"; the loser
// gets ErrConflict.
func (r *QuestRepository) AcceptQuest(ctx context.Context, questID, actorID string) (*model.Quest, error) {
	query := `
		UPDATE type::record($id) SET
			status = "in_progress",
			receiver_id = type::record($actor_id),
			accepted_on = time::now(),
			updated_on = time::now()
		WHERE status = "open"
	`
	vars := map[string]interface{}{
		"id":       questID,
		"actor_id": actorID,
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

	return questFromRecord(updated)
}

// CompleteQuest commits the in_progress -> completed flip and the hero
// reward in a single transaction. Each guarded update THROWs when its
// condition misses, aborting the whole transaction, so the quest status
// and the hero's gold, experience, and level change together or not at
// all. A completed quest can never pay out twice.
func (r *QuestRepository) CompleteQuest(ctx context.Context, questID, actorID string, grant model.RewardApplication) (*model.Quest, error) {
	tb := database.NewTxBuilder()
	tb.Add(`LET $q = (UPDATE type::record($quest_id) SET
			status = "completed",
			completed_on = time::now(),
			updated_on = time::now()
		WHERE status = "in_progress" AND receiver_id = type::record($actor_id))`,
		map[string]interface{}{
			"quest_id": questID,
			"actor_id": actorID,
		})
	tb.AddRaw(`IF array::len($q) == 0 { THROW "quest state conflict" }`)
	tb.Add(`LET $h = (UPDATE type::record($hero_id) SET
			gold += $gold_delta,
			experience += $experience_delta,
			hero_level = $new_level,
			updated_on = time::now()
		WHERE experience = $expected_experience)`,
		map[string]interface{}{
			"hero_id":             grant.HeroID,
			"gold_delta":          grant.GoldDelta,
			"experience_delta":    grant.ExperienceDelta,
			"new_level":           grant.NewLevel,
			"expected_experience": grant.ExpectedExperience,
		})
	tb.AddRaw(`IF array::len($h) == 0 { THROW "hero experience conflict" }`)

	query, vars := tb.Build()
	if err := r.db.Execute(ctx, query, vars); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, database.ErrConflict
		}
		return nil, fmt.Errorf("completion transaction failed: %w", err)
	}

	return r.GetQuest(ctx, questID)
}

// CancelQuest flips an open quest to cancelled. Guarded the same way as
// AcceptQuest: a quest accepted in the meantime no longer matches.
func (r *QuestRepository) CancelQuest(ctx context.Context, questID, creatorID string) (*model.Quest, error) {
	query := `
		UPDATE type::record($id) SET
			status = "cancelled",
			updated_on = time::now()
		WHERE status = "open" AND creator_id = type::record($creator_id)
	`
	vars := map[string]interface{}{
		"id":         questID,
		"creator_id": creatorID,
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

	return questFromRecord(updated)
}

// ListQuests returns the actor's view of the quest board for a filter
func (r *QuestRepository) ListQuests(ctx context.Context, actorID string, filter model.QuestFilter) ([]*model.Quest, error) {
	var query string
	vars := map[string]interface{}{"actor_id": actorID}

	switch filter {
	case model.QuestFilterCreated:
		query = `SELECT * FROM quest WHERE creator_id = type::record($actor_id) ORDER BY created_on DESC`
	case model.QuestFilterAccepted:
		// A pre-assigned quest cancelled by its creator has a receiver
		// set but was never worked on, so cancelled stays out.
		query = `SELECT * FROM quest WHERE receiver_id = type::record($actor_id) AND status IN ["in_progress", "completed"] ORDER BY created_on DESC`
	case model.QuestFilterAssigned:
		query = `SELECT * FROM quest WHERE receiver_id = type::record($actor_id) AND status = "open" ORDER BY created_on DESC`
	case model.QuestFilterAvailable:
		// Marketplace only; quests pre-assigned to the actor surface
		// through the assigned filter instead.
		query = `
			SELECT * FROM quest
			WHERE status = "open"
				AND creator_id != type::record($actor_id)
				AND receiver_id IS NONE
			ORDER BY created_on DESC
		`
	default:
		query = `
			SELECT * FROM quest
			WHERE creator_id = type::record($actor_id)
				OR receiver_id = type::record($actor_id)
				OR (status = "open" AND receiver_id IS NONE)
			ORDER BY created_on DESC
		`
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records, ok := extractQueryResults(result)
	if !ok {
		return []*model.Quest{}, nil
	}

	quests := make([]*model.Quest, 0, len(records))
	for _, record := range records {
		data, ok := record.(map[string]interface{})
		if !ok {
			continue
		}
		quest, err := questFromRecord(data)
		if err != nil {
			return nil, err
		}
		quests = append(quests, quest)
	}

	return quests, nil
}

func parseQuestResult(result interface{}) (*model.Quest, error) {
	data, err := unwrapSingleResult(result)
	if err != nil {
		return nil, err
	}
	return questFromRecord(data)
}

func questFromRecord(data map[string]interface{}) (*model.Quest, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if creator, ok := data["creator_id"]; ok {
		data["creator_id"] = convertSurrealID(creator)
	}
	if receiver, ok := data["receiver_id"]; ok && receiver != nil {
		data["receiver_id"] = convertSurrealID(receiver)
	}

	var quest model.Quest
	if err := unmarshalRecord(data, &quest); err != nil {
		return nil, err
	}
	return &quest, nil
}
