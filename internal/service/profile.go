package service

import (
	"context"

	"github.com/forgo/questboard/api/internal/model"
)

// ProfileService handles hero profile operations: theme, tutorial flag,
// class changes, and the profile sheet. These are thin passthroughs with
// no state machine; gold and experience are never touched here.
type ProfileService struct {
	heroes HeroRepositoryInterface
}

// NewProfileService creates a new profile service
func NewProfileService(heroes HeroRepositoryInterface) *ProfileService {
	return &ProfileService{heroes: heroes}
}

// GetSheet returns the hero with level title and progression details
func (s *ProfileService) GetSheet(ctx context.Context, heroID string) (*model.HeroSheet, error) {
	hero, err := s.heroes.GetHero(ctx, heroID)
	if err != nil {
		return nil, err
	}
	if hero == nil {
		return nil, ErrHeroNotFound
	}

	entry := CurrentLevel(hero.HeroClass, hero.Experience)
	sheet := &model.HeroSheet{
		Hero:            hero,
		Title:           entry.Title,
		ProgressPercent: ProgressPercent(hero.HeroClass, hero.Experience),
	}
	if next := NextLevel(hero.HeroClass, hero.Experience); next != nil {
		sheet.NextLevelAt = &next.ExperienceRequired
	}

	return sheet, nil
}

// SetTheme updates the hero's UI theme preference
func (s *ProfileService) SetTheme(ctx context.Context, heroID string, theme model.ThemeType) (*model.Hero, error) {
	if !theme.IsValid() {
		return nil, ErrInvalidTheme
	}

	hero, err := s.heroes.UpdateTheme(ctx, heroID, theme)
	if err != nil {
		return nil, err
	}
	if hero == nil {
		return nil, ErrHeroNotFound
	}
	return hero, nil
}

// SetClass changes the hero's class. The level is recomputed against the
// new class ladder so hero_level stays consistent with the experience.
func (s *ProfileService) SetClass(ctx context.Context, heroID string, class model.HeroClass) (*model.Hero, error) {
	if !class.IsValid() {
		return nil, ErrInvalidHeroClass
	}

	hero, err := s.heroes.GetHero(ctx, heroID)
	if err != nil {
		return nil, err
	}
	if hero == nil {
		return nil, ErrHeroNotFound
	}

	newLevel := CurrentLevel(class, hero.Experience).Level
	return s.heroes.UpdateClass(ctx, heroID, class, newLevel)
}

// MarkTutorialSeen records that the hero dismissed the tutorial
func (s *ProfileService) MarkTutorialSeen(ctx context.Context, heroID string) (*model.Hero, error) {
	hero, err := s.heroes.MarkTutorialSeen(ctx, heroID)
	if err != nil {
		return nil, err
	}
	if hero == nil {
		return nil, ErrHeroNotFound
	}
	return hero, nil
}
