package model

import "time"

// HeroClass represents the playable class of a hero
type HeroClass string

const (
	HeroClassWarrior HeroClass = "warrior" // Default class
	HeroClassMage    HeroClass = "mage"
	HeroClassRogue   HeroClass = "rogue"
	HeroClassCleric  HeroClass = "cleric"
)

// ValidHeroClasses lists every playable class
var ValidHeroClasses = []HeroClass{HeroClassWarrior, HeroClassMage, HeroClassRogue, HeroClassCleric}

// IsValid returns true if the class is one of the playable classes
func (c HeroClass) IsValid() bool {
	switch c {
	case HeroClassWarrior, HeroClassMage, HeroClassRogue, HeroClassCleric:
		return true
	}
	return false
}

// ThemeType represents the client UI theme preference
type ThemeType string

const (
	ThemeTypeLight  ThemeType = "light"
	ThemeTypeDark   ThemeType = "dark"
	ThemeTypeParch  ThemeType = "parchment"
)

// IsValid returns true if the theme is a known theme
func (t ThemeType) IsValid() bool {
	switch t {
	case ThemeTypeLight, ThemeTypeDark, ThemeTypeParch:
		return true
	}
	return false
}

// HeroRole represents the role of a hero account in the system
type HeroRole string

const (
	HeroRoleUser  HeroRole = "user"
	HeroRoleAdmin HeroRole = "admin" // Access to seeding and admin endpoints
)

// Hero represents a player account with its game state.
//
// Gold and experience only ever increase; HeroLevel is derived from
// experience via the class level table and must stay consistent after
// every mutation of Experience or HeroClass.
type Hero struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        *string   `json:"username,omitempty"`
	Hash            *string   `json:"-"` // Never expose password hash
	HeroClass       HeroClass `json:"hero_class"`
	HeroLevel       int       `json:"hero_level"`
	Experience      int       `json:"experience"`
	Gold            int       `json:"gold"`
	HasSeenTutorial bool      `json:"has_seen_tutorial"`
	Theme           ThemeType `json:"theme"`
	Role            HeroRole  `json:"role"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}

// IsAdmin returns true if the hero has the admin role
func (h *Hero) IsAdmin() bool {
	return h.Role == HeroRoleAdmin
}

// HeroSheet is the profile view of a hero with level progression details
type HeroSheet struct {
	Hero            *Hero   `json:"hero"`
	Title           string  `json:"title"`
	ProgressPercent float64 `json:"progress_percent"`
	// NextLevelAt is the experience threshold of the next level,
	// nil when the hero is at max level.
	NextLevelAt *int `json:"next_level_at,omitempty"`
}

// UpdateThemeRequest changes the hero's UI theme
type UpdateThemeRequest struct {
	Theme ThemeType `json:"theme"`
}

// UpdateClassRequest changes the hero's class
type UpdateClassRequest struct {
	HeroClass HeroClass `json:"hero_class"`
}

// GrantResult reports the outcome of a reward grant
type GrantResult struct {
	Hero      *Hero `json:"hero"`
	LeveledUp bool  `json:"leveled_up"`
}
