package model

import (
	"errors"
	"time"
)

// QuestStatus represents the lifecycle state of a quest
type QuestStatus string

const (
	QuestStatusOpen       QuestStatus = "open"
	QuestStatusInProgress QuestStatus = "in_progress"
	QuestStatusCompleted  QuestStatus = "completed"
	QuestStatusCancelled  QuestStatus = "cancelled"
)

// IsTerminal returns true once a quest can no longer change state
func (s QuestStatus) IsTerminal() bool {
	return s == QuestStatusCompleted || s == QuestStatusCancelled
}

// QuestAction represents an action attempted against a quest
type QuestAction string

const (
	QuestActionAccept   QuestAction = "accept"
	QuestActionComplete QuestAction = "complete"
	QuestActionCancel   QuestAction = "cancel"
)

// ErrInvalidTransition indicates the quest is not in a state that
// permits the requested action.
var ErrInvalidTransition = errors.New("invalid quest transition")

// questTransitions encodes the full lifecycle:
// open -> in_progress -> completed, open -> cancelled.
// Completed and cancelled are terminal; in_progress cannot be cancelled.
var questTransitions = map[QuestStatus]map[QuestAction]QuestStatus{
	QuestStatusOpen: {
		QuestActionAccept: QuestStatusInProgress,
		QuestActionCancel: QuestStatusCancelled,
	},
	QuestStatusInProgress: {
		QuestActionComplete: QuestStatusCompleted,
	},
}

// NextQuestStatus returns the state a quest moves to when the action is
// applied, or ErrInvalidTransition when the action is not permitted from
// the current state. It is pure and independent of persistence.
func NextQuestStatus(current QuestStatus, action QuestAction) (QuestStatus, error) {
	if next, ok := questTransitions[current][action]; ok {
		return next, nil
	}
	return current, ErrInvalidTransition
}

// CanTransition reports whether the action is valid from the current state
func (s QuestStatus) CanTransition(action QuestAction) bool {
	_, err := NextQuestStatus(s, action)
	return err == nil
}

// QuestDifficulty represents how hard a quest is expected to be
type QuestDifficulty string

const (
	QuestDifficultyEasy   QuestDifficulty = "easy"
	QuestDifficultyMedium QuestDifficulty = "medium"
	QuestDifficultyHard   QuestDifficulty = "hard"
	QuestDifficultyEpic   QuestDifficulty = "epic"
)

// IsValid returns true if the difficulty is a known value
func (d QuestDifficulty) IsValid() bool {
	switch d {
	case QuestDifficultyEasy, QuestDifficultyMedium, QuestDifficultyHard, QuestDifficultyEpic:
		return true
	}
	return false
}

// QuestCategory groups quests for filtering and display
type QuestCategory string

const (
	QuestCategoryGeneral   QuestCategory = "general"
	QuestCategoryChores    QuestCategory = "chores"
	QuestCategoryWork      QuestCategory = "work"
	QuestCategoryFitness   QuestCategory = "fitness"
	QuestCategoryLearning  QuestCategory = "learning"
	QuestCategorySocial    QuestCategory = "social"
)

// IsValid returns true if the category is a known value
func (c QuestCategory) IsValid() bool {
	switch c {
	case QuestCategoryGeneral, QuestCategoryChores, QuestCategoryWork,
		QuestCategoryFitness, QuestCategoryLearning, QuestCategorySocial:
		return true
	}
	return false
}

// Quest represents a task with a gold/experience reward.
//
// ReceiverID is nil for marketplace quests until somebody accepts them,
// and equals CreatorID for self-assigned quests. Once the quest leaves
// OPEN the receiver never changes. Terminal quests are retained, never
// deleted.
type Quest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Reward      int             `json:"reward"`
	Experience  int             `json:"experience"`
	Difficulty  QuestDifficulty `json:"difficulty"`
	Category    QuestCategory   `json:"category"`
	Status      QuestStatus     `json:"status"`
	CreatorID   string          `json:"creator_id"`
	ReceiverID  *string         `json:"receiver_id,omitempty"`
	Location    *string         `json:"location,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	IsUrgent    bool            `json:"is_urgent"`
	AcceptedOn  *time.Time      `json:"accepted_on,omitempty"`
	CompletedOn *time.Time      `json:"completed_on,omitempty"`
	CreatedOn   time.Time       `json:"created_on"`
	UpdatedOn   time.Time       `json:"updated_on"`
}

// IsSelfAssigned returns true when the creator gave the quest to themselves
func (q *Quest) IsSelfAssigned() bool {
	return q.ReceiverID != nil && *q.ReceiverID == q.CreatorID
}

// AssignTarget selects who a new quest is assigned to
const (
	// AssignSelf assigns the quest back to its creator
	AssignSelf = "self"
)

// CreateQuestRequest carries the fields for quest creation
type CreateQuestRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Reward      int             `json:"reward"`
	Experience  int             `json:"experience"`
	Difficulty  QuestDifficulty `json:"difficulty,omitempty"`
	Category    QuestCategory   `json:"category,omitempty"`
	Location    *string         `json:"location,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	IsUrgent    bool            `json:"is_urgent,omitempty"`
	// AssignTo is "self", a hero ID, or empty for the open marketplace
	AssignTo string `json:"assign_to,omitempty"`
}

// QuestFilter selects which quests a listing returns
type QuestFilter string

const (
	// QuestFilterCreated lists quests the actor created
	QuestFilterCreated QuestFilter = "created"
	// QuestFilterAccepted lists quests the actor is working on or finished
	QuestFilterAccepted QuestFilter = "accepted"
	// QuestFilterAvailable lists open marketplace quests from other heroes
	QuestFilterAvailable QuestFilter = "available"
	// QuestFilterAssigned lists open quests waiting for the actor's acceptance
	QuestFilterAssigned QuestFilter = "assigned"
	// QuestFilterAll lists every quest the actor created or received
	QuestFilterAll QuestFilter = "all"
)

// IsValid returns true if the filter is a known value
func (f QuestFilter) IsValid() bool {
	switch f {
	case QuestFilterCreated, QuestFilterAccepted, QuestFilterAvailable,
		QuestFilterAssigned, QuestFilterAll:
		return true
	}
	return false
}
