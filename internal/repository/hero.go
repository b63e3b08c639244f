package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
)

// HeroRepository handles hero data access
type HeroRepository struct {
	db database.Database
}

// NewHeroRepository creates a new hero repository
func NewHeroRepository(db database.Database) *HeroRepository {
	return &HeroRepository{db: db}
}

// Create creates a new hero
func (r *HeroRepository) Create(ctx context.Context, hero *model.Hero) error {
	class := hero.HeroClass
	if !class.IsValid() {
		class = model.HeroClassWarrior
	}
	role := hero.Role
	if role == "" {
		role = model.HeroRoleUser
	}
	theme := hero.Theme
	if !theme.IsValid() {
		theme = model.ThemeTypeLight
	}

	query := `
		CREATE hero CONTENT {
			email: $email,
			username: IF $username IS NOT NULL THEN $username ELSE NONE END,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			hero_class: $hero_class,
			hero_level: $hero_level,
			experience: $experience,
			gold: $gold,
			has_seen_tutorial: $has_seen_tutorial,
			theme: $theme,
			role: $role,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	level := hero.HeroLevel
	if level < 1 {
		level = 1
	}

	vars := map[string]interface{}{
		"email":             hero.Email,
		"username":          ptrToNone(hero.Username),
		"hash":              ptrToNone(hero.Hash),
		"hero_class":        class,
		"hero_level":        level,
		"experience":        hero.Experience,
		"gold":              hero.Gold,
		"has_seen_tutorial": hero.HasSeenTutorial,
		"theme":             theme,
		"role":              role,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := unwrapSingleResult(result)
	if err != nil {
		return err
	}

	hero.ID = convertSurrealID(created["id"])
	hero.HeroClass = class
	hero.HeroLevel = level
	hero.Role = role
	hero.Theme = theme
	if t := getTime(created, "created_on"); t != nil {
		hero.CreatedOn = *t
	}
	if t := getTime(created, "updated_on"); t != nil {
		hero.UpdatedOn = *t
	}
	return nil
}

// GetHero retrieves a hero by ID
func (r *HeroRepository) GetHero(ctx context.Context, id string) (*model.Hero, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	hero, err := parseHeroResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return hero, nil
}

// GetHeroByEmail retrieves a hero by email
func (r *HeroRepository) GetHeroByEmail(ctx context.Context, email string) (*model.Hero, error) {
	query := `SELECT * FROM hero WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	hero, err := parseHeroResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return hero, nil
}

// ApplyGrant adds gold and experience to a hero and stores the recomputed
// level. The update is guarded on the experience the caller read; if a
// concurrent grant committed first the guard misses and ErrConflict is
// returned so the caller can re-read and retry.
func (r *HeroRepository) ApplyGrant(ctx context.Context, grant model.RewardApplication) (*model.Hero, error) {
	query := `
		UPDATE type::record($id) SET
			gold += $gold_delta,
			experience += $experience_delta,
			hero_level = $new_level,
			updated_on = time::now()
		WHERE experience = $expected_experience
	`
	vars := map[string]interface{}{
		"id":                  grant.HeroID,
		"gold_delta":          grant.GoldDelta,
		"experience_delta":    grant.ExperienceDelta,
		"new_level":           grant.NewLevel,
		"expected_experience": grant.ExpectedExperience,
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

	return heroFromRecord(updated)
}

// UpdateTheme updates a hero's UI theme preference
func (r *HeroRepository) UpdateTheme(ctx context.Context, id string, theme model.ThemeType) (*model.Hero, error) {
	query := `UPDATE type::record($id) SET theme = $theme, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":    id,
		"theme": theme,
	}
	return r.updateAndParse(ctx, query, vars)
}

// UpdateClass updates a hero's class and the level recomputed for it
func (r *HeroRepository) UpdateClass(ctx context.Context, id string, class model.HeroClass, newLevel int) (*model.Hero, error) {
	query := `
		UPDATE type::record($id) SET
			hero_class = $hero_class,
			hero_level = $hero_level,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":         id,
		"hero_class": class,
		"hero_level": newLevel,
	}
	return r.updateAndParse(ctx, query, vars)
}

// MarkTutorialSeen records that the hero dismissed the tutorial
func (r *HeroRepository) MarkTutorialSeen(ctx context.Context, id string) (*model.Hero, error) {
	query := `UPDATE type::record($id) SET has_seen_tutorial = true, updated_on = time::now()`
	vars := map[string]interface{}{"id": id}
	return r.updateAndParse(ctx, query, vars)
}

// Delete deletes a hero
func (r *HeroRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

func (r *HeroRepository) updateAndParse(ctx context.Context, query string, vars map[string]interface{}) (*model.Hero, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	updated, err := unwrapSingleResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return heroFromRecord(updated)
}

func parseHeroResult(result interface{}) (*model.Hero, error) {
	data, err := unwrapSingleResult(result)
	if err != nil {
		return nil, err
	}
	return heroFromRecord(data)
}

func heroFromRecord(data map[string]interface{}) (*model.Hero, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}

	// Extract hash before JSON marshal/unmarshal (Hero.Hash has json:"-")
	var hash *string
	if h, ok := data["hash"].(string); ok {
		hash = &h
	}

	var hero model.Hero
	if err := unmarshalRecord(data, &hero); err != nil {
		return nil, err
	}

	hero.Hash = hash
	return &hero, nil
}

// ptrToNone converts a string pointer to either the string value or nil.
// When used with SurrealDB queries that check for NONE, this allows proper
// handling of optional fields.
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
