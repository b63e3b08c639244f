package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand/v2"
	"time"

	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// SeederService generates mock data for testing and development
type SeederService struct {
	db database.Database
}

// NewSeederService creates a new seeder service
func NewSeederService(db database.Database) *SeederService {
	return &SeederService{db: db}
}

// SeedHeroesRequest configures hero seeding
type SeedHeroesRequest struct {
	Count int `json:"count"`
	// ClassDistribution specifies percentage of heroes per class
	// Keys: "warrior", "mage", "rogue", "cleric"
	ClassDistribution map[string]int `json:"class_distribution,omitempty"`
	// MaxExperience caps the random experience rolled per hero
	MaxExperience int `json:"max_experience,omitempty"`
	// Prefix for seeded hero emails to identify them for cleanup
	Prefix string `json:"prefix,omitempty"`
}

// SeedQuestsRequest configures quest seeding
type SeedQuestsRequest struct {
	Count int `json:"count"`
	// Status seeds quests in a specific state: "open", "in_progress", "completed"
	Status string `json:"status,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// SeedFriendshipsRequest configures friendship seeding
type SeedFriendshipsRequest struct {
	Count  int    `json:"count"`
	Status string `json:"status,omitempty"` // "pending", "accepted", "rejected"
	Prefix string `json:"prefix,omitempty"`
}

// SeedScenarioRequest runs a predefined scenario
type SeedScenarioRequest struct {
	Scenario string `json:"scenario"` // e.g., "busy_board", "guild_of_friends", "veteran_party"
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	Created  int      `json:"created"`
	IDs      []string `json:"ids"`
	Duration int64    `json:"duration_ms"`
}

// CleanupResult contains the results of a cleanup operation
type CleanupResult struct {
	Deleted  int   `json:"deleted"`
	Duration int64 `json:"duration_ms"`
}

// Sample data for realistic generation
var (
	heroNames = []string{
		"thorin", "elara", "garrick", "lyra", "baldric", "seraphine", "cormac",
		"isolde", "aldric", "rowena", "fenwick", "morgana", "cedric", "elowen",
		"dustan", "ophelia", "brannoc", "gwendolyn", "hadrian", "yvaine",
		"osric", "melisande", "tybalt", "anwen", "leoric", "sabine", "wulfric",
		"catriona", "edmund", "rhiannon", "percival", "maeve", "godfrey", "linnea",
	}
	questTitles = []string{
		"Slay the Laundry Pile", "Tame the Inbox Beast", "Forge the Weekly Report",
		"Scale Mount Dishes", "Recover the Lost Receipts", "Defend the Garden",
		"Escort the Recycling", "Brew the Morning Coffee", "Chart the Grocery Realm",
		"Mend the Broken Fence", "Decode the Tax Scrolls", "Sweep the Dungeon Floor",
		"Deliver the Parcel of Holding", "Vanquish the Weeds", "Polish the Armor",
		"Stock the Pantry Vault", "Walk the Hound of Dawn", "Tune the Bard's Lute",
		"Patch the Leaky Cauldron", "Organize the Tome Shelf",
	}
	questDescriptions = []string{
		"A task long neglected. Glory awaits whoever sees it through.",
		"The household grows restless. Only a true hero can restore order.",
		"Rumors speak of great reward for the one who completes this deed.",
		"Not for the faint of heart, but the gold is good.",
		"A quick errand for a sharp-eyed adventurer.",
		"The quest giver is desperate. Payment on completion, as always.",
	}
	questDifficulties = []model.QuestDifficulty{
		model.QuestDifficultyEasy, model.QuestDifficultyEasy,
		model.QuestDifficultyMedium, model.QuestDifficultyMedium,
		model.QuestDifficultyHard, model.QuestDifficultyEpic,
	}
	questCategories = []model.QuestCategory{
		model.QuestCategoryGeneral, model.QuestCategoryChores, model.QuestCategoryWork,
		model.QuestCategoryFitness, model.QuestCategoryLearning, model.QuestCategorySocial,
	}
)

// SeedHeroes creates mock heroes with randomized classes and progression
func (s *SeederService) SeedHeroes(ctx context.Context, req SeedHeroesRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Count <= 0 || req.Count > 1000 {
		return nil, fmt.Errorf("count must be between 1 and 1000")
	}

	if req.Prefix == "" {
		req.Prefix = "seed_"
	}

	if req.MaxExperience <= 0 {
		req.MaxExperience = 1500
	}

	// Default class distribution
	if req.ClassDistribution == nil {
		req.ClassDistribution = map[string]int{
			"warrior": 40,
			"mage":    25,
			"rogue":   20,
			"cleric":  15,
		}
	}

	ids := make([]string, 0, req.Count)
	password := "testpass123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	for i := 0; i < req.Count; i++ {
		randID := randomID()
		email := fmt.Sprintf("%s%s@test.local", req.Prefix, randID)
		username := fmt.Sprintf("%s%s_%s", req.Prefix, heroNames[mrand.IntN(len(heroNames))], randID[:4])

		class := pickClass(req.ClassDistribution)
		experience := mrand.IntN(req.MaxExperience)
		level := CurrentLevel(class, experience).Level
		gold := mrand.IntN(500)

		heroQuery := `
			CREATE hero CONTENT {
				email: $email,
				username: $username,
				hash: $hash,
				hero_class: $hero_class,
				hero_level: $hero_level,
				experience: $experience,
				gold: $gold,
				has_seen_tutorial: true,
				theme: "light",
				role: "user",
				created_on: time::now(),
				updated_on: time::now()
			}
		`
		results, err := s.db.Query(ctx, heroQuery, map[string]interface{}{
			"email":      email,
			"username":   username,
			"hash":       string(hash),
			"hero_class": string(class),
			"hero_level": level,
			"experience": experience,
			"gold":       gold,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create hero: %w", err)
		}

		heroID := extractID(results)
		if heroID == "" {
			return nil, fmt.Errorf("failed to extract hero ID")
		}
		ids = append(ids, heroID)
	}

	return &SeedResult{
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedQuests creates mock quests authored by seeded heroes
func (s *SeederService) SeedQuests(ctx context.Context, req SeedQuestsRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Count <= 0 || req.Count > 500 {
		return nil, fmt.Errorf("count must be between 1 and 500")
	}

	if req.Prefix == "" {
		req.Prefix = "seed_"
	}

	if req.Status == "" {
		req.Status = string(model.QuestStatusOpen)
	}

	// Get seeded heroes to act as creators and receivers
	heroQuery := fmt.Sprintf(`SELECT id FROM hero WHERE email CONTAINS '%s' LIMIT %d`, req.Prefix, req.Count*2)
	heroResults, err := s.db.Query(ctx, heroQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query heroes: %w", err)
	}

	heroIDs := extractIDs(heroResults)
	if len(heroIDs) < 2 {
		seedResult, err := s.SeedHeroes(ctx, SeedHeroesRequest{
			Count:  10,
			Prefix: req.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed heroes for quests: %w", err)
		}
		heroIDs = seedResult.IDs
	}

	ids := make([]string, 0, req.Count)

	for i := 0; i < req.Count; i++ {
		creatorID := heroIDs[mrand.IntN(len(heroIDs))]
		title := fmt.Sprintf("%s%s", req.Prefix, questTitles[mrand.IntN(len(questTitles))])
		description := questDescriptions[mrand.IntN(len(questDescriptions))]
		difficulty := questDifficulties[mrand.IntN(len(questDifficulties))]
		category := questCategories[mrand.IntN(len(questCategories))]
		reward := (mrand.IntN(10) + 1) * 5
		experience := (mrand.IntN(8) + 1) * 5

		questQuery := `
			CREATE quest CONTENT {
				title: $title,
				description: $description,
				reward: $reward,
				experience: $experience,
				difficulty: $difficulty,
				category: $category,
				status: $status,
				creator_id: type::record($creator_id),
				is_urgent: $is_urgent,
				created_on: time::now(),
				updated_on: time::now()
			}
		`
		results, err := s.db.Query(ctx, questQuery, map[string]interface{}{
			"title":       title,
			"description": description,
			"reward":      reward,
			"experience":  experience,
			"difficulty":  string(difficulty),
			"category":    string(category),
			"status":      req.Status,
			"creator_id":  creatorID,
			"is_urgent":   mrand.IntN(10) == 0,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create quest: %w", err)
		}

		questID := extractID(results)
		if questID == "" {
			return nil, fmt.Errorf("failed to extract quest ID")
		}
		ids = append(ids, questID)

		// Accepted and completed quests need a receiver other than the creator
		if req.Status != string(model.QuestStatusOpen) {
			receiverID := heroIDs[mrand.IntN(len(heroIDs))]
			if receiverID == creatorID {
				receiverID = heroIDs[(mrand.IntN(len(heroIDs))+1)%len(heroIDs)]
			}

			updateQuery := `
				UPDATE type::record($quest_id) SET
					receiver_id = type::record($receiver_id),
					accepted_on = time::now(),
					updated_on = time::now()
			`
			if req.Status == string(model.QuestStatusCompleted) {
				updateQuery = `
					UPDATE type::record($quest_id) SET
						receiver_id = type::record($receiver_id),
						accepted_on = time::now(),
						completed_on = time::now(),
						updated_on = time::now()
				`
			}
			if err := s.db.Execute(ctx, updateQuery, map[string]interface{}{
				"quest_id":    questID,
				"receiver_id": receiverID,
			}); err != nil {
				return nil, fmt.Errorf("failed to assign quest receiver: %w", err)
			}
		}
	}

	return &SeedResult{
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedFriendships creates friendships between seeded heroes
func (s *SeederService) SeedFriendships(ctx context.Context, req SeedFriendshipsRequest) (*SeedResult, error) {
	start := time.Now()

	if req.Count <= 0 || req.Count > 500 {
		return nil, fmt.Errorf("count must be between 1 and 500")
	}

	if req.Prefix == "" {
		req.Prefix = "seed_"
	}

	if req.Status == "" {
		req.Status = string(model.FriendshipStatusAccepted)
	}

	heroQuery := fmt.Sprintf(`SELECT id FROM hero WHERE email CONTAINS '%s' LIMIT %d`, req.Prefix, req.Count*2)
	heroResults, err := s.db.Query(ctx, heroQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query heroes: %w", err)
	}

	heroIDs := extractIDs(heroResults)
	if len(heroIDs) < 2 {
		seedResult, err := s.SeedHeroes(ctx, SeedHeroesRequest{
			Count:  req.Count + 1,
			Prefix: req.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed heroes for friendships: %w", err)
		}
		heroIDs = seedResult.IDs
	}

	ids := make([]string, 0, req.Count)

	for i := 0; i < req.Count && i+1 < len(heroIDs); i++ {
		senderID := heroIDs[i]
		receiverID := heroIDs[i+1]

		friendshipQuery := `
			CREATE friendship CONTENT {
				sender_id: type::record($sender_id),
				receiver_id: type::record($receiver_id),
				status: $status,
				created_on: time::now(),
				updated_on: time::now()
			}
		`
		results, err := s.db.Query(ctx, friendshipQuery, map[string]interface{}{
			"sender_id":   senderID,
			"receiver_id": receiverID,
			"status":      req.Status,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create friendship: %w", err)
		}

		if friendshipID := extractID(results); friendshipID != "" {
			ids = append(ids, friendshipID)
		}
	}

	return &SeedResult{
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// SeedScenario runs a predefined scenario
func (s *SeederService) SeedScenario(ctx context.Context, req SeedScenarioRequest) (*SeedResult, error) {
	start := time.Now()
	var totalCreated int
	var allIDs []string

	switch req.Scenario {
	case "busy_board":
		// 20 heroes with a full marketplace of open quests
		heroResult, err := s.SeedHeroes(ctx, SeedHeroesRequest{
			Count:  20,
			Prefix: "board_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, heroResult.IDs...)
		totalCreated += heroResult.Created

		questResult, err := s.SeedQuests(ctx, SeedQuestsRequest{
			Count:  40,
			Prefix: "board_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, questResult.IDs...)
		totalCreated += questResult.Created

	case "guild_of_friends":
		// 10 heroes all mutually connected
		heroResult, err := s.SeedHeroes(ctx, SeedHeroesRequest{
			Count:  10,
			Prefix: "guild_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, heroResult.IDs...)
		totalCreated += heroResult.Created

		friendResult, err := s.SeedFriendships(ctx, SeedFriendshipsRequest{
			Count:  9,
			Prefix: "guild_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, friendResult.IDs...)
		totalCreated += friendResult.Created

	case "veteran_party":
		// High-level heroes with a completed quest history
		heroResult, err := s.SeedHeroes(ctx, SeedHeroesRequest{
			Count:         5,
			MaxExperience: 2700,
			Prefix:        "veteran_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, heroResult.IDs...)
		totalCreated += heroResult.Created

		questResult, err := s.SeedQuests(ctx, SeedQuestsRequest{
			Count:  15,
			Status: string(model.QuestStatusCompleted),
			Prefix: "veteran_",
		})
		if err != nil {
			return nil, err
		}
		allIDs = append(allIDs, questResult.IDs...)
		totalCreated += questResult.Created

	default:
		return nil, fmt.Errorf("unknown scenario: %s", req.Scenario)
	}

	return &SeedResult{
		Created:  totalCreated,
		IDs:      allIDs,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// Cleanup removes all seeded data with the given prefix
func (s *SeederService) Cleanup(ctx context.Context, prefix string) (*CleanupResult, error) {
	start := time.Now()

	if prefix == "" {
		prefix = "seed_"
	}

	var totalDeleted int

	// One atomic batch: quests and friendships go before the heroes that
	// anchor them, and a partial cleanup never leaves orphaned records.
	batch := database.NewAtomicBatch().
		Add(`DELETE quest WHERE title CONTAINS $prefix`, map[string]interface{}{"prefix": prefix}).
		Add(`DELETE friendship WHERE sender_id.email CONTAINS $prefix OR receiver_id.email CONTAINS $prefix`, map[string]interface{}{"prefix": prefix}).
		Add(`DELETE hero WHERE email CONTAINS $prefix`, map[string]interface{}{"prefix": prefix})
	if err := batch.Execute(ctx, s.db); err != nil {
		return nil, fmt.Errorf("failed to delete seeded data: %w", err)
	}

	// Count what we deleted (approximation based on prefix)
	countQuery := fmt.Sprintf(`SELECT count() FROM hero WHERE email CONTAINS '%s' GROUP ALL`, prefix)
	results, _ := s.db.Query(ctx, countQuery, nil)
	if len(results) > 0 {
		// If we get here, count should be 0 since we deleted them
		totalDeleted = 0
	}

	return &CleanupResult{
		Deleted:  totalDeleted,
		Duration: time.Since(start).Milliseconds(),
	}, nil
}

// Helper functions

func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func pickClass(distribution map[string]int) model.HeroClass {
	total := 0
	for _, v := range distribution {
		total += v
	}
	if total == 0 {
		return model.HeroClassWarrior
	}

	r := mrand.IntN(total)
	cumulative := 0
	for name, weight := range distribution {
		cumulative += weight
		if r < cumulative {
			class := model.HeroClass(name)
			if class.IsValid() {
				return class
			}
			return model.HeroClassWarrior
		}
	}

	return model.HeroClassWarrior
}

func extractID(results []interface{}) string {
	if len(results) == 0 {
		return ""
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return ""
	}

	result, ok := resp["result"]
	if !ok {
		return ""
	}

	// Handle array result
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return ""
		}
		data, ok := arr[0].(map[string]interface{})
		if !ok {
			return ""
		}
		return formatID(data["id"])
	}

	// Handle single result
	data, ok := result.(map[string]interface{})
	if !ok {
		return ""
	}
	return formatID(data["id"])
}

func extractIDs(results []interface{}) []string {
	var ids []string
	if len(results) == 0 {
		return ids
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return ids
	}

	result, ok := resp["result"]
	if !ok {
		return ids
	}

	arr, ok := result.([]interface{})
	if !ok {
		return ids
	}

	for _, item := range arr {
		data, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if id := formatID(data["id"]); id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

func formatID(v interface{}) string {
	if v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	// Handle SurrealDB 3 record ID type
	if m, ok := v.(map[string]interface{}); ok {
		if tb, ok := m["tb"].(string); ok {
			if id := m["id"]; id != nil {
				return fmt.Sprintf("%s:%v", tb, id)
			}
		}
	}

	// Fallback: convert "{table id}" to "table:id"
	s := fmt.Sprintf("%v", v)
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
