package service

import "github.com/forgo/questboard/api/internal/model"

// LevelEntry is one rung of a class progression ladder
type LevelEntry struct {
	Level              int    `json:"level"`
	ExperienceRequired int    `json:"experience_required"`
	Title              string `json:"title"`
}

// Experience thresholds shared by every class ladder. Level 1 starts at 0;
// each band is wider than the last.
var levelThresholds = [...]int{0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700}

// MaxHeroLevel is the highest attainable level for any class
const MaxHeroLevel = len(levelThresholds)

var classTitles = map[model.HeroClass][]string{
	model.HeroClassWarrior: {
		"Peasant Militia", "Squire", "Footman", "Man-at-Arms", "Sergeant",
		"Knight", "Knight-Captain", "Champion", "Warlord", "Legend of the Battlefield",
	},
	model.HeroClassMage: {
		"Apprentice", "Scribe", "Conjurer", "Evoker", "Adept",
		"Magician", "Warlock", "Archmage", "Grand Magus", "Keeper of the Arcane",
	},
	model.HeroClassRogue: {
		"Pickpocket", "Footpad", "Burglar", "Cutpurse", "Infiltrator",
		"Shadow", "Assassin", "Master Thief", "Phantom", "King of the Underworld",
	},
	model.HeroClassCleric: {
		"Novice", "Acolyte", "Deacon", "Curate", "Chaplain",
		"Priest", "Bishop", "Cardinal", "Saint", "Voice of the Divine",
	},
}

// classLadder returns the progression ladder for a class. Unknown classes
// fall back to the warrior ladder; this is a documented fallback, not an
// error, so stale or future class values still resolve to a valid level.
func classLadder(class model.HeroClass) []LevelEntry {
	titles, ok := classTitles[class]
	if !ok {
		titles = classTitles[model.HeroClassWarrior]
	}
	ladder := make([]LevelEntry, len(levelThresholds))
	for i, xp := range levelThresholds {
		ladder[i] = LevelEntry{Level: i + 1, ExperienceRequired: xp, Title: titles[i]}
	}
	return ladder
}

// clampExperience treats malformed negative experience as 0
func clampExperience(experience int) int {
	if experience < 0 {
		return 0
	}
	return experience
}

// CurrentLevel returns the greatest ladder entry whose threshold the
// hero's experience has reached.
func CurrentLevel(class model.HeroClass, experience int) LevelEntry {
	experience = clampExperience(experience)
	ladder := classLadder(class)

	current := ladder[0]
	for _, entry := range ladder {
		if entry.ExperienceRequired > experience {
			break
		}
		current = entry
	}
	return current
}

// NextLevel returns the ladder entry after the current one, or nil at max level
func NextLevel(class model.HeroClass, experience int) *LevelEntry {
	current := CurrentLevel(class, experience)
	ladder := classLadder(class)
	if current.Level >= len(ladder) {
		return nil
	}
	next := ladder[current.Level] // ladder is 0-indexed, levels are 1-indexed
	return &next
}

// ProgressPercent reports how far through the current level band the hero
// is, as a linear interpolation between the current and next thresholds.
// Returns 100 at max level.
func ProgressPercent(class model.HeroClass, experience int) float64 {
	experience = clampExperience(experience)
	current := CurrentLevel(class, experience)
	next := NextLevel(class, experience)
	if next == nil {
		return 100
	}

	band := next.ExperienceRequired - current.ExperienceRequired
	into := experience - current.ExperienceRequired
	return float64(into) / float64(band) * 100
}

// CanLevelUp reports whether a hero whose stored level is storedLevel has
// accumulated enough experience to rank up. A single grant can cross
// several thresholds at once, so the check compares against the recomputed
// level rather than the next rung only.
func CanLevelUp(class model.HeroClass, storedLevel, experience int) bool {
	return CurrentLevel(class, experience).Level > storedLevel
}
