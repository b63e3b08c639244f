package service

import (
	"testing"

	"github.com/forgo/questboard/api/internal/model"
)

func TestCurrentLevel_Thresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		experience int
		wantLevel  int
	}{
		{"zero experience", 0, 1},
		{"just below level 2", 99, 1},
		{"exactly level 2", 100, 2},
		{"between 2 and 3", 180, 2},
		{"exactly level 3", 250, 3},
		{"max level", 2700, 10},
		{"beyond max level", 99999, 10},
		{"negative clamps to zero", -50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentLevel(model.HeroClassWarrior, tt.experience)
			if got.Level != tt.wantLevel {
				t.Errorf("CurrentLevel(%d) = %d, want %d", tt.experience, got.Level, tt.wantLevel)
			}
		})
	}
}

func TestCurrentLevel_UnknownClassFallsBackToWarrior(t *testing.T) {
	t.Parallel()

	warrior := CurrentLevel(model.HeroClassWarrior, 500)
	unknown := CurrentLevel(model.HeroClass("necromancer"), 500)

	if unknown.Level != warrior.Level {
		t.Errorf("unknown class level = %d, want warrior level %d", unknown.Level, warrior.Level)
	}
	if unknown.Title != warrior.Title {
		t.Errorf("unknown class title = %q, want warrior title %q", unknown.Title, warrior.Title)
	}
}

func TestCurrentLevel_ClassTitlesDiffer(t *testing.T) {
	t.Parallel()

	warrior := CurrentLevel(model.HeroClassWarrior, 100)
	mage := CurrentLevel(model.HeroClassMage, 100)

	if warrior.Level != mage.Level {
		t.Fatalf("classes share thresholds, expected equal levels, got %d and %d", warrior.Level, mage.Level)
	}
	if warrior.Title == mage.Title {
		t.Errorf("expected different titles for warrior and mage at level %d", warrior.Level)
	}
}

func TestNextLevel(t *testing.T) {
	t.Parallel()

	next := NextLevel(model.HeroClassRogue, 0)
	if next == nil {
		t.Fatal("expected a next level at level 1")
	}
	if next.Level != 2 || next.ExperienceRequired != 100 {
		t.Errorf("expected level 2 at 100 xp, got level %d at %d xp", next.Level, next.ExperienceRequired)
	}

	if NextLevel(model.HeroClassRogue, 2700) != nil {
		t.Error("expected nil next level at max level")
	}
}

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		experience int
		want       float64
	}{
		{"band start", 0, 0},
		{"halfway through first band", 50, 50},
		{"new band resets relationally", 100, 0},
		{"halfway through second band", 175, 50},
		{"max level pegs at 100", 2700, 100},
		{"past max level stays at 100", 5000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(model.HeroClassCleric, tt.experience)
			if got != tt.want {
				t.Errorf("ProgressPercent(%d) = %v, want %v", tt.experience, got, tt.want)
			}
		})
	}
}

func TestProgressPercent_MonotonicWithinBand(t *testing.T) {
	t.Parallel()

	prev := -1.0
	for xp := 100; xp < 250; xp += 10 {
		got := ProgressPercent(model.HeroClassWarrior, xp)
		if got < prev {
			t.Fatalf("progress decreased within band: %v -> %v at %d xp", prev, got, xp)
		}
		if got < 0 || got > 100 {
			t.Fatalf("progress out of range at %d xp: %v", xp, got)
		}
		prev = got
	}
}

func TestCanLevelUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		storedLevel int
		experience  int
		want        bool
	}{
		{"below threshold", 1, 90, false},
		{"crossed one threshold", 1, 105, true},
		{"exactly at threshold", 1, 100, true},
		{"level already current", 2, 105, false},
		{"multi-level jump", 1, 500, true},
		{"max level never levels", 10, 99999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanLevelUp(model.HeroClassWarrior, tt.storedLevel, tt.experience)
			if got != tt.want {
				t.Errorf("CanLevelUp(level=%d, xp=%d) = %v, want %v", tt.storedLevel, tt.experience, got, tt.want)
			}
		})
	}
}

func TestLadder_StrictlyIncreasing(t *testing.T) {
	t.Parallel()

	for _, class := range model.ValidHeroClasses {
		ladder := classLadder(class)
		if len(ladder) != MaxHeroLevel {
			t.Fatalf("%s ladder has %d entries, want %d", class, len(ladder), MaxHeroLevel)
		}
		if ladder[0].Level != 1 || ladder[0].ExperienceRequired != 0 {
			t.Errorf("%s ladder must start at level 1 with 0 xp", class)
		}
		for i := 1; i < len(ladder); i++ {
			if ladder[i].ExperienceRequired <= ladder[i-1].ExperienceRequired {
				t.Errorf("%s ladder not strictly increasing at level %d", class, ladder[i].Level)
			}
			if ladder[i].Level != ladder[i-1].Level+1 {
				t.Errorf("%s ladder levels not consecutive at index %d", class, i)
			}
		}
	}
}
