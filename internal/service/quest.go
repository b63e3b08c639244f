package service

import (
	"context"
	"errors"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
)

// QuestRepositoryInterface defines the repository interface for quests
type QuestRepositoryInterface interface {
	CreateQuest(ctx context.Context, quest *model.Quest) error
	GetQuest(ctx context.Context, id string) (*model.Quest, error)
	// AcceptQuest flips OPEN -> IN_PROGRESS with a conditional update;
	// returns database.ErrConflict when the quest is no longer open.
	AcceptQuest(ctx context.Context, questID, actorID string) (*model.Quest, error)
	// CompleteQuest commits the IN_PROGRESS -> COMPLETED flip and the hero
	// reward as one transaction; both apply or neither does.
	CompleteQuest(ctx context.Context, questID, actorID string, grant model.RewardApplication) (*model.Quest, error)
	CancelQuest(ctx context.Context, questID, creatorID string) (*model.Quest, error)
	ListQuests(ctx context.Context, actorID string, filter model.QuestFilter) ([]*model.Quest, error)
}

// QuestService handles the quest lifecycle business logic
type QuestService struct {
	repo    QuestRepositoryInterface
	heroes  HeroRepositoryInterface
	rewards *RewardEngine
}

// NewQuestService creates a new quest service
func NewQuestService(repo QuestRepositoryInterface, heroes HeroRepositoryInterface, rewards *RewardEngine) *QuestService {
	return &QuestService{repo: repo, heroes: heroes, rewards: rewards}
}

// Create validates and persists a new quest in the OPEN state.
// AssignTo selects the receiver: "self" hands the quest back to the
// creator, a hero ID pre-assigns it pending that hero's acceptance, and
// empty leaves it on the open marketplace.
func (s *QuestService) Create(ctx context.Context, creatorID string, req *model.CreateQuestRequest) (*model.Quest, error) {
	if req.Title == "" {
		return nil, ErrQuestTitleRequired
	}
	if req.Description == "" {
		return nil, ErrQuestDescriptionRequired
	}
	if req.Reward < 0 {
		return nil, ErrNegativeReward
	}
	if req.Experience < 0 {
		return nil, ErrNegativeExperience
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.QuestDifficultyEasy
	}
	if !difficulty.IsValid() {
		return nil, ErrInvalidDifficulty
	}

	category := req.Category
	if category == "" {
		category = model.QuestCategoryGeneral
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	var receiverID *string
	switch req.AssignTo {
	case "":
		// Open marketplace quest
	case model.AssignSelf:
		receiverID = &creatorID
	default:
		hero, err := s.heroes.GetHero(ctx, req.AssignTo)
		if err != nil {
			return nil, err
		}
		if hero == nil {
			return nil, ErrHeroNotFound
		}
		id := hero.ID
		receiverID = &id
	}

	quest := &model.Quest{
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		Experience:  req.Experience,
		Difficulty:  difficulty,
		Category:    category,
		Status:      model.QuestStatusOpen,
		CreatorID:   creatorID,
		ReceiverID:  receiverID,
		Location:    req.Location,
		DueDate:     req.DueDate,
		IsUrgent:    req.IsUrgent,
	}

	if err := s.repo.CreateQuest(ctx, quest); err != nil {
		return nil, err
	}

	return quest, nil
}

// Get returns a quest visible to the actor
func (s *QuestService) Get(ctx context.Context, questID string) (*model.Quest, error) {
	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, ErrQuestNotFound
	}
	return quest, nil
}

// Accept moves an OPEN quest to IN_PROGRESS with the actor as receiver.
// The creator cannot accept their own quest unless it was self-assigned
// at creation. Pre-assigned quests can only be accepted by their receiver.
func (s *QuestService) Accept(ctx context.Context, questID, actorID string) (*model.Quest, error) {
	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, ErrQuestNotFound
	}

	if !quest.Status.CanTransition(model.QuestActionAccept) {
		return nil, ErrQuestNotOpen
	}
	if quest.CreatorID == actorID && !quest.IsSelfAssigned() {
		return nil, ErrCannotAcceptOwnQuest
	}
	if quest.ReceiverID != nil && *quest.ReceiverID != actorID {
		return nil, ErrQuestAssignedElsewhere
	}

	// The conditional update is the arbiter under concurrency: of two
	// simultaneous accepts exactly one matches status = open.
	updated, err := s.repo.AcceptQuest(ctx, questID, actorID)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrQuestNotOpen
		}
		return nil, err
	}

	return updated, nil
}

// Complete moves an IN_PROGRESS quest to COMPLETED and grants the reward
// to the receiver. The status flip and the gold/experience/level update
// commit as one atomic unit; a second completion of the same quest fails
// without touching the hero again.
func (s *QuestService) Complete(ctx context.Context, questID, actorID string) (*model.QuestCompletion, error) {
	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, ErrQuestNotFound
	}

	if !quest.Status.CanTransition(model.QuestActionComplete) {
		return nil, ErrQuestNotInProgress
	}
	if quest.ReceiverID == nil || *quest.ReceiverID != actorID {
		return nil, ErrNotQuestReceiver
	}

	prepared, err := s.rewards.Prepare(ctx, actorID, quest.Reward, quest.Experience)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.CompleteQuest(ctx, questID, actorID, prepared.Hero)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrQuestNotInProgress
		}
		return nil, ErrRewardCommitFailed
	}

	hero, err := s.heroes.GetHero(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return &model.QuestCompletion{
		Quest:     completed,
		Hero:      hero,
		LeveledUp: prepared.LeveledUp,
	}, nil
}

// Cancel moves an OPEN quest to CANCELLED. Only the creator may cancel,
// and only while the quest is still open; an accepted quest stays with
// its receiver.
func (s *QuestService) Cancel(ctx context.Context, questID, actorID string) (*model.Quest, error) {
	quest, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, ErrQuestNotFound
	}

	if quest.CreatorID != actorID {
		return nil, ErrNotQuestCreator
	}
	if !quest.Status.CanTransition(model.QuestActionCancel) {
		return nil, ErrQuestNotOpen
	}

	cancelled, err := s.repo.CancelQuest(ctx, questID, actorID)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrQuestNotOpen
		}
		return nil, err
	}

	return cancelled, nil
}

// List returns the actor's view of the quest board for the given filter
func (s *QuestService) List(ctx context.Context, actorID string, filter model.QuestFilter) ([]*model.Quest, error) {
	if filter == "" {
		filter = model.QuestFilterAll
	}
	if !filter.IsValid() {
		return nil, ErrInvalidQuestFilter
	}
	return s.repo.ListQuests(ctx, actorID, filter)
}
