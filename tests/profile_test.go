// Package tests contains end-to-end acceptance tests for the Questboard API.
package tests

import (
	"context"
	"testing"

	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/repository"
	"github.com/forgo/questboard/api/internal/service"
	"github.com/forgo/questboard/api/internal/testing/fixtures"
	"github.com/forgo/questboard/api/internal/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
FEATURE: Hero Profile
DOMAIN: Heroes

ACCEPTANCE CRITERIA:
===================

AC-PROFILE-001: Get Profile Sheet
  GIVEN a hero with accumulated experience
  WHEN the hero requests their profile sheet
  THEN the sheet shows the class title, progress, and next threshold

AC-PROFILE-002: Get Profile Sheet - Max Level
  GIVEN a hero at the top of the ladder
  WHEN the hero requests their profile sheet
  THEN progress reads 100 and no next threshold is reported

AC-PROFILE-003: Update Theme
  GIVEN a hero
  WHEN the hero sets a valid theme
  THEN the preference is persisted
  AND an unknown theme is refused

AC-PROFILE-004: Change Class
  GIVEN a hero with experience under one class
  WHEN the hero switches class
  THEN the level is recomputed against the new class ladder

AC-PROFILE-005: Mark Tutorial Seen
  GIVEN a hero who has not seen the tutorial
  WHEN the hero dismisses the tutorial
  THEN the flag is persisted
*/

// createProfileService wires a ProfileService over a real hero repository
func createProfileService(t *testing.T, tdb *testdb.TestDB) *service.ProfileService {
	t.Helper()
	return service.NewProfileService(repository.NewHeroRepository(tdb.DB))
}

func TestProfile_GetSheet(t *testing.T) {
	// AC-PROFILE-001: Get Profile Sheet
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	profileService := createProfileService(t, tdb)
	ctx := context.Background()

	// 250 experience reaches the third rung exactly
	hero := f.CreateVeteran(t, model.HeroClassMage, 250)

	sheet, err := profileService.GetSheet(ctx, hero.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, sheet.Hero.HeroLevel)
	assert.Equal(t, "Conjurer", sheet.Title)
	assert.Equal(t, 0.0, sheet.ProgressPercent)
	require.NotNil(t, sheet.NextLevelAt)
	assert.Equal(t, 450, *sheet.NextLevelAt)

	_, err = profileService.GetSheet(ctx, "hero:doesnotexist")
	assert.ErrorIs(t, err, service.ErrHeroNotFound)
}

func TestProfile_GetSheetMaxLevel(t *testing.T) {
	// AC-PROFILE-002: Get Profile Sheet - Max Level
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	profileService := createProfileService(t, tdb)
	ctx := context.Background()

	hero := f.CreateVeteran(t, model.HeroClassWarrior, 3000)

	sheet, err := profileService.GetSheet(ctx, hero.ID)

	require.NoError(t, err)
	assert.Equal(t, service.MaxHeroLevel, sheet.Hero.HeroLevel)
	assert.Equal(t, "Legend of the Battlefield", sheet.Title)
	assert.Equal(t, 100.0, sheet.ProgressPercent)
	assert.Nil(t, sheet.NextLevelAt)
}

func TestProfile_UpdateTheme(t *testing.T) {
	// AC-PROFILE-003: Update Theme
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	profileService := createProfileService(t, tdb)
	ctx := context.Background()

	hero := f.CreateHero(t)

	updated, err := profileService.SetTheme(ctx, hero.ID, model.ThemeTypeDark)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeTypeDark, updated.Theme)

	_, err = profileService.SetTheme(ctx, hero.ID, model.ThemeType("neon"))
	assert.ErrorIs(t, err, service.ErrInvalidTheme)
}

func TestProfile_ChangeClass(t *testing.T) {
	// AC-PROFILE-004: Change Class
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	profileService := createProfileService(t, tdb)
	ctx := context.Background()

	hero := f.CreateVeteran(t, model.HeroClassWarrior, 300)

	updated, err := profileService.SetClass(ctx, hero.ID, model.HeroClassRogue)

	require.NoError(t, err)
	assert.Equal(t, model.HeroClassRogue, updated.HeroClass)
	// Level is recomputed from experience, not carried over blindly
	assert.Equal(t, service.CurrentLevel(model.HeroClassRogue, 300).Level, updated.HeroLevel)
	assert.Equal(t, 300, updated.Experience)

	_, err = profileService.SetClass(ctx, hero.ID, model.HeroClass("necromancer"))
	assert.ErrorIs(t, err, service.ErrInvalidHeroClass)
}

func TestProfile_MarkTutorialSeen(t *testing.T) {
	// AC-PROFILE-005: Mark Tutorial Seen
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	profileService := createProfileService(t, tdb)
	ctx := context.Background()

	hero := f.CreateHero(t)
	require.False(t, hero.HasSeenTutorial)

	updated, err := profileService.MarkTutorialSeen(ctx, hero.ID)

	require.NoError(t, err)
	assert.True(t, updated.HasSeenTutorial)
}
