// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	hero := f.CreateHero(t)
//	quest := f.CreateQuest(t, hero)
//	friendship := f.CreateFriendship(t, hero, other)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	// Store cancel to prevent leak warning
	_ = cancel
	return c
}

// ============================================================================
// Hero Fixtures
// ============================================================================

// HeroOpts customizes hero creation
type HeroOpts struct {
	Email      string
	Username   string
	Password   string
	Role       model.HeroRole
	HeroClass  model.HeroClass
	Experience int
	Gold       int
	HeroLevel  int
}

// CreateHero creates a hero with optional customizations
func (f *Factory) CreateHero(t *testing.T, opts ...func(*HeroOpts)) *model.Hero {
	t.Helper()

	o := &HeroOpts{
		Email:     fmt.Sprintf("hero_%s@test.local", randomID()),
		Username:  fmt.Sprintf("hero_%s", randomID()),
		Password:  "testpass123",
		Role:      model.HeroRoleUser,
		HeroClass: model.HeroClassWarrior,
		HeroLevel: 1,
	}
	for _, fn := range opts {
		fn(o)
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	query := `
		CREATE hero CONTENT {
			email: $email,
			username: $username,
			hash: $hash,
			hero_class: $hero_class,
			hero_level: $hero_level,
			experience: $experience,
			gold: $gold,
			has_seen_tutorial: false,
			theme: "light",
			role: $role,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"email":      o.Email,
		"username":   o.Username,
		"hash":       string(hash),
		"hero_class": string(o.HeroClass),
		"hero_level": o.HeroLevel,
		"experience": o.Experience,
		"gold":       o.Gold,
		"role":       string(o.Role),
	}

	results, err := f.db.Query(ctx(), query, vars)
	if err != nil {
		t.Fatalf("fixtures: failed to create hero: %v", err)
	}

	hero := parseHeroResult(t, results)
	hero.Hash = nil // Don't expose hash in fixture
	return hero
}

// CreateAdmin creates a hero with the admin role
func (f *Factory) CreateAdmin(t *testing.T) *model.Hero {
	return f.CreateHero(t, func(o *HeroOpts) {
		o.Role = model.HeroRoleAdmin
	})
}

// CreateVeteran creates a hero with enough experience to sit at a mid level
func (f *Factory) CreateVeteran(t *testing.T, class model.HeroClass, experience int) *model.Hero {
	return f.CreateHero(t, func(o *HeroOpts) {
		o.HeroClass = class
		o.Experience = experience
		o.HeroLevel = service.CurrentLevel(class, experience).Level
		o.Gold = experience / 2
	})
}

// ============================================================================
// Quest Fixtures
// ============================================================================

// QuestOpts customizes quest creation
type QuestOpts struct {
	Title       string
	Description string
	Reward      int
	Experience  int
	Difficulty  model.QuestDifficulty
	Category    model.QuestCategory
	Status      model.QuestStatus
	ReceiverID  string
}

// CreateQuest creates a quest owned by the given creator
func (f *Factory) CreateQuest(t *testing.T, creator *model.Hero, opts ...func(*QuestOpts)) *model.Quest {
	t.Helper()

	o := &QuestOpts{
		Title:       fmt.Sprintf("Quest %s", randomID()),
		Description: "Test quest description",
		Reward:      10,
		Experience:  5,
		Difficulty:  model.QuestDifficultyEasy,
		Category:    model.QuestCategoryChores,
		Status:      model.QuestStatusOpen,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE quest CONTENT {
			title: $title,
			description: $description,
			reward: $reward,
			experience: $experience,
			difficulty: $difficulty,
			category: $category,
			status: $status,
			is_urgent: false,
			creator_id: type::record($creator_id),
			receiver_id: IF $receiver_id IS NOT NULL THEN type::record($receiver_id) ELSE NONE END,
			accepted_on: IF $status IN ["in_progress", "completed"] THEN time::now() ELSE NONE END,
			completed_on: IF $status = "completed" THEN time::now() ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	var receiver interface{}
	if o.ReceiverID != "" {
		receiver = o.ReceiverID
	}
	vars := map[string]interface{}{
		"title":       o.Title,
		"description": o.Description,
		"reward":      o.Reward,
		"experience":  o.Experience,
		"difficulty":  string(o.Difficulty),
		"category":    string(o.Category),
		"status":      string(o.Status),
		"creator_id":  creator.ID,
		"receiver_id": receiver,
	}

	results, err := f.db.Query(ctx(), query, vars)
	if err != nil {
		t.Fatalf("fixtures: failed to create quest: %v", err)
	}

	return parseQuestResult(t, results)
}

// CreateAcceptedQuest creates a quest already in progress for the receiver
func (f *Factory) CreateAcceptedQuest(t *testing.T, creator, receiver *model.Hero, opts ...func(*QuestOpts)) *model.Quest {
	base := func(o *QuestOpts) {
		o.Status = model.QuestStatusInProgress
		o.ReceiverID = receiver.ID
	}
	return f.CreateQuest(t, creator, append([]func(*QuestOpts){base}, opts...)...)
}

// ============================================================================
// Friendship Fixtures
// ============================================================================

// CreateFriendship creates a friendship between two heroes with the given status
func (f *Factory) CreateFriendship(t *testing.T, sender, receiver *model.Hero, status model.FriendshipStatus) *model.Friendship {
	t.Helper()

	query := `
		CREATE friendship CONTENT {
			sender_id: type::record($sender_id),
			receiver_id: type::record($receiver_id),
			status: $status,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"sender_id":   sender.ID,
		"receiver_id": receiver.ID,
		"status":      string(status),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create friendship: %v", err)
	}

	return parseFriendshipResult(t, results)
}

// CreatePendingRequest creates a pending friendship request
func (f *Factory) CreatePendingRequest(t *testing.T, sender, receiver *model.Hero) *model.Friendship {
	return f.CreateFriendship(t, sender, receiver, model.FriendshipStatusPending)
}

// MakeFriends creates an accepted friendship between two heroes
func (f *Factory) MakeFriends(t *testing.T, a, b *model.Hero) *model.Friendship {
	return f.CreateFriendship(t, a, b, model.FriendshipStatusAccepted)
}

// ============================================================================
// Result Parsing Helpers
// ============================================================================

func parseHeroResult(t *testing.T, results []interface{}) *model.Hero {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Hero{
		ID:              getString(data, "id"),
		Email:           getString(data, "email"),
		Username:        getStringPtr(data, "username"),
		HeroClass:       model.HeroClass(getString(data, "hero_class")),
		HeroLevel:       getInt(data, "hero_level"),
		Experience:      getInt(data, "experience"),
		Gold:            getInt(data, "gold"),
		HasSeenTutorial: getBool(data, "has_seen_tutorial"),
		Theme:           model.ThemeType(getString(data, "theme")),
		Role:            model.HeroRole(getString(data, "role")),
		CreatedOn:       getTime(data, "created_on"),
		UpdatedOn:       getTime(data, "updated_on"),
	}
}

func parseQuestResult(t *testing.T, results []interface{}) *model.Quest {
	t.Helper()
	data := extractFirstResult(t, results)
	quest := &model.Quest{
		ID:          getString(data, "id"),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Reward:      getInt(data, "reward"),
		Experience:  getInt(data, "experience"),
		Difficulty:  model.QuestDifficulty(getString(data, "difficulty")),
		Category:    model.QuestCategory(getString(data, "category")),
		Status:      model.QuestStatus(getString(data, "status")),
		CreatorID:   getString(data, "creator_id"),
		IsUrgent:    getBool(data, "is_urgent"),
		CreatedOn:   getTime(data, "created_on"),
		UpdatedOn:   getTime(data, "updated_on"),
	}
	if r := getString(data, "receiver_id"); r != "" {
		quest.ReceiverID = &r
	}
	return quest
}

func parseFriendshipResult(t *testing.T, results []interface{}) *model.Friendship {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Friendship{
		ID:         getString(data, "id"),
		SenderID:   getString(data, "sender_id"),
		ReceiverID: getString(data, "receiver_id"),
		Status:     model.FriendshipStatus(getString(data, "status")),
		CreatedOn:  getTime(data, "created_on"),
		UpdatedOn:  getTime(data, "updated_on"),
	}
}

// ============================================================================
// Data Extraction Helpers
// ============================================================================

func extractFirstResult(t *testing.T, results []interface{}) map[string]interface{} {
	t.Helper()
	if len(results) == 0 {
		t.Fatal("fixtures: no results returned")
	}

	// Handle SurrealDB response wrapper
	resp, ok := results[0].(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", results[0])
	}

	result, ok := resp["result"]
	if !ok {
		t.Fatal("fixtures: no result in response")
	}

	// Handle array result
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			t.Fatal("fixtures: empty result array")
		}
		data, ok := arr[0].(map[string]interface{})
		if !ok {
			t.Fatalf("fixtures: unexpected array item type: %T", arr[0])
		}
		return data
	}

	// Handle single result
	data, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", result)
	}
	return data
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	// Handle SurrealDB record ID type - could be a struct or map
	if v := data[key]; v != nil {
		// Try to get the ID as a map with "tb" (table) and "id" fields
		if m, ok := v.(map[string]interface{}); ok {
			if tb, ok := m["tb"].(string); ok {
				if id := m["id"]; id != nil {
					return fmt.Sprintf("%s:%v", tb, id)
				}
			}
		}
		// Fallback: use string conversion but fix the format if needed
		s := fmt.Sprintf("%v", v)
		// Convert "{table id}" to "table:id"
		if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
			inner := s[1 : len(s)-1]
			for i, c := range inner {
				if c == ' ' {
					return inner[:i] + ":" + inner[i+1:]
				}
			}
		}
		return s
	}
	return ""
}

func getStringPtr(data map[string]interface{}, key string) *string {
	if v, ok := data[key].(string); ok {
		return &v
	}
	return nil
}

func getBool(data map[string]interface{}, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return false
}

func getInt(data map[string]interface{}, key string) int {
	if v, ok := data[key].(float64); ok {
		return int(v)
	}
	return 0
}

func getTime(data map[string]interface{}, key string) time.Time {
	if v, ok := data[key].(string); ok {
		t, _ := time.Parse(time.RFC3339Nano, v)
		return t
	}
	return time.Time{}
}
