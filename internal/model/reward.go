package model

// RewardApplication is a fully computed hero update ready to be committed.
//
// ExpectedExperience guards the write: the persistence layer only applies
// the update while the hero's experience still matches it, so a concurrent
// grant cannot be silently overwritten.
type RewardApplication struct {
	HeroID             string
	GoldDelta          int
	ExperienceDelta    int
	NewLevel           int
	ExpectedExperience int
}

// QuestCompletion is the result of completing a quest: the terminal quest,
// the rewarded hero, and whether the reward pushed the hero over a level
// threshold.
type QuestCompletion struct {
	Quest     *Quest `json:"quest"`
	Hero      *Hero  `json:"hero"`
	LeveledUp bool   `json:"leveled_up"`
}
