package service

import (
	"context"
	"errors"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
)

// HeroRepositoryInterface defines the repository interface for heroes
type HeroRepositoryInterface interface {
	GetHero(ctx context.Context, id string) (*model.Hero, error)
	ApplyGrant(ctx context.Context, grant model.RewardApplication) (*model.Hero, error)
	UpdateTheme(ctx context.Context, id string, theme model.ThemeType) (*model.Hero, error)
	UpdateClass(ctx context.Context, id string, class model.HeroClass, newLevel int) (*model.Hero, error)
	MarkTutorialSeen(ctx context.Context, id string) (*model.Hero, error)
}

// RewardEngine applies gold and experience rewards to heroes and keeps
// hero_level consistent with the class level table. Quest completion does
// not call Grant directly: it asks Prepare for the computed update and
// commits it in the same transaction as the quest status change.
type RewardEngine struct {
	heroes HeroRepositoryInterface
}

// NewRewardEngine creates a new reward engine
func NewRewardEngine(heroes HeroRepositoryInterface) *RewardEngine {
	return &RewardEngine{heroes: heroes}
}

// PreparedGrant is a computed reward for a hero, ready to commit
type PreparedGrant struct {
	Hero        model.RewardApplication
	LeveledUp   bool
	ResultLevel LevelEntry
}

// Prepare reads the hero and computes the reward application without
// persisting anything. Deltas must be non-negative; callers guarantee the
// business sign, the engine only recomputes the level.
func (e *RewardEngine) Prepare(ctx context.Context, heroID string, goldDelta, experienceDelta int) (*PreparedGrant, error) {
	hero, err := e.heroes.GetHero(ctx, heroID)
	if err != nil {
		return nil, err
	}
	if hero == nil {
		return nil, ErrHeroNotFound
	}

	newExperience := hero.Experience + experienceDelta
	// Recompute rather than increment: one oversized grant may cross
	// several thresholds.
	entry := CurrentLevel(hero.HeroClass, newExperience)

	return &PreparedGrant{
		Hero: model.RewardApplication{
			HeroID:             hero.ID,
			GoldDelta:          goldDelta,
			ExperienceDelta:    experienceDelta,
			NewLevel:           entry.Level,
			ExpectedExperience: hero.Experience,
		},
		LeveledUp:   entry.Level > hero.HeroLevel,
		ResultLevel: entry,
	}, nil
}

// Grant applies a reward to a hero on its own, outside any quest
// transaction. The conditional write is keyed on the hero's experience at
// read time; a concurrent grant makes the commit fail rather than clobber.
func (e *RewardEngine) Grant(ctx context.Context, heroID string, goldDelta, experienceDelta int) (*model.GrantResult, error) {
	prepared, err := e.Prepare(ctx, heroID, goldDelta, experienceDelta)
	if err != nil {
		return nil, err
	}

	hero, err := e.heroes.ApplyGrant(ctx, prepared.Hero)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrRewardCommitFailed
		}
		return nil, err
	}

	return &model.GrantResult{Hero: hero, LeveledUp: prepared.LeveledUp}, nil
}
