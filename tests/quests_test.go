// Package tests contains end-to-end acceptance tests for the Questboard API.
package tests

import (
	"context"
	"errors"
	"sync"
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
FEATURE: Quest Lifecycle
DOMAIN: Quests

ACCEPTANCE CRITERIA:
===================

AC-QUEST-001: Create Marketplace Quest
  GIVEN authenticated hero
  WHEN hero creates a quest without an assignee
  THEN quest is created in open status with no receiver

AC-QUEST-002: Create Self-Assigned Quest
  GIVEN authenticated hero
  WHEN hero creates a quest assigned to "self"
  THEN quest is created open with the creator as receiver

AC-QUEST-003: Create Pre-Assigned Quest
  GIVEN two heroes
  WHEN hero A creates a quest assigned to hero B
  THEN quest is created open with B as receiver

AC-QUEST-004: Create Quest - Validation
  GIVEN authenticated hero
  WHEN hero creates a quest with a missing title or negative reward
  THEN creation fails with a validation error

AC-QUEST-005: Accept Quest
  GIVEN an open marketplace quest from another hero
  WHEN hero accepts it
  THEN quest moves to in_progress with hero as receiver

AC-QUEST-006: Accept Own Quest
  GIVEN hero's own open marketplace quest
  WHEN hero tries to accept it
  THEN the accept fails

AC-QUEST-007: Accept Self-Assigned Quest
  GIVEN hero's own self-assigned quest
  WHEN hero accepts it
  THEN quest moves to in_progress

AC-QUEST-008: Accept Pre-Assigned Quest - Wrong Hero
  GIVEN a quest pre-assigned to hero B
  WHEN hero C tries to accept it
  THEN the accept fails

AC-QUEST-009: Accept Quest Twice
  GIVEN an in_progress quest
  WHEN any hero tries to accept it again
  THEN the accept fails because the quest is no longer open

AC-QUEST-010: Complete Quest
  GIVEN an in_progress quest held by hero
  WHEN hero completes it
  THEN quest moves to completed
  AND hero receives the gold and experience reward

AC-QUEST-011: Complete Quest - Level Up
  GIVEN a hero just below a level threshold
  WHEN they complete a quest crossing the threshold
  THEN the completion reports a level up
  AND the stored hero level matches the new experience

AC-QUEST-012: Complete Quest Twice
  GIVEN a completed quest
  WHEN the receiver completes it again
  THEN the second completion fails
  AND the reward is not granted twice

AC-QUEST-013: Complete Quest - Not Receiver
  GIVEN an in_progress quest held by hero B
  WHEN hero C tries to complete it
  THEN the completion fails

AC-QUEST-014: Cancel Quest
  GIVEN hero's own open quest
  WHEN hero cancels it
  THEN quest moves to cancelled

AC-QUEST-015: Cancel Quest - Not Creator
  GIVEN an open quest created by hero A
  WHEN hero B tries to cancel it
  THEN the cancel fails

AC-QUEST-016: Cancel Accepted Quest
  GIVEN an in_progress quest
  WHEN the creator tries to cancel it
  THEN the cancel fails because the quest left the open state

AC-QUEST-017: List Quests - Filters
  GIVEN quests in various states around a hero
  WHEN the hero lists with created/accepted/available/assigned filters
  THEN each filter returns only the matching quests

AC-QUEST-018: Concurrent Accepts - One Winner
  GIVEN an open marketplace quest
  WHEN two heroes accept it at the same time
  THEN exactly one accept succeeds
  AND the other observes a conflict
*/

// createQuestService wires a QuestService over real repositories
func createQuestService(t *testing.T, tdb *testdb.TestDB) *service.QuestService {
	t.Helper()

	heroRepo := repository.NewHeroRepository(tdb.DB)
	questRepo := repository.NewQuestRepository(tdb.DB)

	return service.NewQuestService(questRepo, heroRepo, service.NewRewardEngine(heroRepo))
}

func TestQuest_CreateMarketplace(t *testing.T) {
	// AC-QUEST-001: Create Marketplace Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)

	quest, err := questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Title:       "Clear the cellar rats",
		Description: "The tavern cellar is overrun again",
		Reward:      25,
		Experience:  15,
		Difficulty:  model.QuestDifficultyMedium,
		Category:    model.QuestCategoryChores,
	})

	require.NoError(t, err)
	require.NotNil(t, quest)

	assert.NotEmpty(t, quest.ID)
	assert.Equal(t, model.QuestStatusOpen, quest.Status)
	assert.Equal(t, creator.ID, quest.CreatorID)
	assert.Nil(t, quest.ReceiverID)
	assert.Equal(t, 25, quest.Reward)
	assert.Equal(t, 15, quest.Experience)
}

func TestQuest_CreateSelfAssigned(t *testing.T) {
	// AC-QUEST-002: Create Self-Assigned Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)

	quest, err := questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Title:       "Morning run",
		Description: "Run around the city walls before breakfast",
		Reward:      5,
		Experience:  10,
		Category:    model.QuestCategoryFitness,
		AssignTo:    model.AssignSelf,
	})

	require.NoError(t, err)
	require.NotNil(t, quest.ReceiverID)
	assert.Equal(t, creator.ID, *quest.ReceiverID)
	assert.Equal(t, model.QuestStatusOpen, quest.Status)
	assert.True(t, quest.IsSelfAssigned())
}

func TestQuest_CreatePreAssigned(t *testing.T) {
	// AC-QUEST-003: Create Pre-Assigned Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	receiver := f.CreateHero(t)

	quest, err := questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Title:       "Deliver the parcel",
		Description: "Take this to the docks before sundown",
		Reward:      30,
		Experience:  20,
		AssignTo:    receiver.ID,
	})

	require.NoError(t, err)
	require.NotNil(t, quest.ReceiverID)
	assert.Equal(t, receiver.ID, *quest.ReceiverID)
	assert.Equal(t, model.QuestStatusOpen, quest.Status)

	// Assigning to an unknown hero fails
	_, err = questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Title:       "Ghost delivery",
		Description: "Nobody is there to take this",
		AssignTo:    "hero:doesnotexist",
	})
	assert.ErrorIs(t, err, service.ErrHeroNotFound)
}

func TestQuest_CreateValidation(t *testing.T) {
	// AC-QUEST-004: Create Quest - Validation
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)

	_, err := questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Description: "No title here",
	})
	assert.ErrorIs(t, err, service.ErrQuestTitleRequired)

	_, err = questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Title: "No description here",
	})
	assert.ErrorIs(t, err, service.ErrQuestDescriptionRequired)

	_, err = questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Title:       "Bad bounty",
		Description: "The reward cannot be a debt",
		Reward:      -10,
	})
	assert.ErrorIs(t, err, service.ErrNegativeReward)

	_, err = questService.Create(ctx, creator.ID, &model.CreateQuestRequest{
		Title:       "Bad difficulty",
		Description: "Unknown tier",
		Difficulty:  model.QuestDifficulty("nightmare"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidDifficulty)
}

func TestQuest_Accept(t *testing.T) {
	// AC-QUEST-005: Accept Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	taker := f.CreateHero(t)
	quest := f.CreateQuest(t, creator)

	accepted, err := questService.Accept(ctx, quest.ID, taker.ID)

	require.NoError(t, err)
	assert.Equal(t, model.QuestStatusInProgress, accepted.Status)
	require.NotNil(t, accepted.ReceiverID)
	assert.Equal(t, taker.ID, *accepted.ReceiverID)
	assert.NotNil(t, accepted.AcceptedOn)
}

func TestQuest_AcceptOwnQuest(t *testing.T) {
	// AC-QUEST-006: Accept Own Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	quest := f.CreateQuest(t, creator)

	_, err := questService.Accept(ctx, quest.ID, creator.ID)
	assert.ErrorIs(t, err, service.ErrCannotAcceptOwnQuest)
}

func TestQuest_AcceptSelfAssigned(t *testing.T) {
	// AC-QUEST-007: Accept Self-Assigned Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	quest := f.CreateQuest(t, creator, func(o *fixtures.QuestOpts) {
		o.ReceiverID = creator.ID
	})

	accepted, err := questService.Accept(ctx, quest.ID, creator.ID)

	require.NoError(t, err)
	assert.Equal(t, model.QuestStatusInProgress, accepted.Status)
}

func TestQuest_AcceptAssignedElsewhere(t *testing.T) {
	// AC-QUEST-008: Accept Pre-Assigned Quest - Wrong Hero
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	assignee := f.CreateHero(t)
	bystander := f.CreateHero(t)
	quest := f.CreateQuest(t, creator, func(o *fixtures.QuestOpts) {
		o.ReceiverID = assignee.ID
	})

	_, err := questService.Accept(ctx, quest.ID, bystander.ID)
	assert.ErrorIs(t, err, service.ErrQuestAssignedElsewhere)

	// The assignee can still accept it
	accepted, err := questService.Accept(ctx, quest.ID, assignee.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QuestStatusInProgress, accepted.Status)
}

func TestQuest_AcceptTwice(t *testing.T) {
	// AC-QUEST-009: Accept Quest Twice
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	first := f.CreateHero(t)
	second := f.CreateHero(t)
	quest := f.CreateQuest(t, creator)

	_, err := questService.Accept(ctx, quest.ID, first.ID)
	require.NoError(t, err)

	_, err = questService.Accept(ctx, quest.ID, second.ID)
	assert.ErrorIs(t, err, service.ErrQuestNotOpen)
}

func TestQuest_Complete(t *testing.T) {
	// AC-QUEST-010: Complete Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	receiver := f.CreateHero(t)
	quest := f.CreateAcceptedQuest(t, creator, receiver, func(o *fixtures.QuestOpts) {
		o.Reward = 40
		o.Experience = 30
	})

	completion, err := questService.Complete(ctx, quest.ID, receiver.ID)

	require.NoError(t, err)
	require.NotNil(t, completion)
	assert.Equal(t, model.QuestStatusCompleted, completion.Quest.Status)
	assert.NotNil(t, completion.Quest.CompletedOn)
	assert.False(t, completion.LeveledUp)

	// The receiver was paid exactly once
	assert.Equal(t, receiver.Gold+40, completion.Hero.Gold)
	assert.Equal(t, receiver.Experience+30, completion.Hero.Experience)
}

func TestQuest_CompleteLevelUp(t *testing.T) {
	// AC-QUEST-011: Complete Quest - Level Up
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	// 95 experience sits just under the 100 threshold for level 2
	receiver := f.CreateHero(t, func(o *fixtures.HeroOpts) {
		o.Experience = 95
		o.HeroLevel = 1
	})
	quest := f.CreateAcceptedQuest(t, creator, receiver, func(o *fixtures.QuestOpts) {
		o.Experience = 10
	})

	completion, err := questService.Complete(ctx, quest.ID, receiver.ID)

	require.NoError(t, err)
	assert.True(t, completion.LeveledUp)
	assert.Equal(t, 105, completion.Hero.Experience)
	assert.Equal(t, 2, completion.Hero.HeroLevel)
}

func TestQuest_CompleteTwice(t *testing.T) {
	// AC-QUEST-012: Complete Quest Twice
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	receiver := f.CreateHero(t)
	quest := f.CreateAcceptedQuest(t, creator, receiver, func(o *fixtures.QuestOpts) {
		o.Reward = 40
		o.Experience = 30
	})

	first, err := questService.Complete(ctx, quest.ID, receiver.ID)
	require.NoError(t, err)

	_, err = questService.Complete(ctx, quest.ID, receiver.ID)
	assert.ErrorIs(t, err, service.ErrQuestNotInProgress)

	// The hero's stats are unchanged after the failed second attempt
	sheet := createProfileService(t, tdb)
	current, err := sheet.GetSheet(ctx, receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Hero.Gold, current.Hero.Gold)
	assert.Equal(t, first.Hero.Experience, current.Hero.Experience)
}

func TestQuest_CompleteNotReceiver(t *testing.T) {
	// AC-QUEST-013: Complete Quest - Not Receiver
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	receiver := f.CreateHero(t)
	bystander := f.CreateHero(t)
	quest := f.CreateAcceptedQuest(t, creator, receiver)

	_, err := questService.Complete(ctx, quest.ID, bystander.ID)
	assert.ErrorIs(t, err, service.ErrNotQuestReceiver)

	_, err = questService.Complete(ctx, quest.ID, creator.ID)
	assert.ErrorIs(t, err, service.ErrNotQuestReceiver)
}

func TestQuest_Cancel(t *testing.T) {
	// AC-QUEST-014: Cancel Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	quest := f.CreateQuest(t, creator)

	cancelled, err := questService.Cancel(ctx, quest.ID, creator.ID)

	require.NoError(t, err)
	assert.Equal(t, model.QuestStatusCancelled, cancelled.Status)
}

func TestQuest_CancelNotCreator(t *testing.T) {
	// AC-QUEST-015: Cancel Quest - Not Creator
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	other := f.CreateHero(t)
	quest := f.CreateQuest(t, creator)

	_, err := questService.Cancel(ctx, quest.ID, other.ID)
	assert.ErrorIs(t, err, service.ErrNotQuestCreator)
}

func TestQuest_CancelAccepted(t *testing.T) {
	// AC-QUEST-016: Cancel Accepted Quest
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	receiver := f.CreateHero(t)
	quest := f.CreateAcceptedQuest(t, creator, receiver)

	_, err := questService.Cancel(ctx, quest.ID, creator.ID)
	assert.ErrorIs(t, err, service.ErrQuestNotOpen)
}

func TestQuest_ListFilters(t *testing.T) {
	// AC-QUEST-017: List Quests - Filters
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	hero := f.CreateHero(t)
	other := f.CreateHero(t)

	created := f.CreateQuest(t, hero)
	accepted := f.CreateAcceptedQuest(t, other, hero)
	available := f.CreateQuest(t, other)
	assigned := f.CreateQuest(t, other, func(o *fixtures.QuestOpts) {
		o.ReceiverID = hero.ID
	})

	questIDs := func(quests []*model.Quest) []string {
		ids := make([]string, 0, len(quests))
		for _, q := range quests {
			ids = append(ids, q.ID)
		}
		return ids
	}

	list, err := questService.List(ctx, hero.ID, model.QuestFilterCreated)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{created.ID}, questIDs(list))

	list, err = questService.List(ctx, hero.ID, model.QuestFilterAccepted)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{accepted.ID}, questIDs(list))

	list, err = questService.List(ctx, hero.ID, model.QuestFilterAvailable)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{available.ID}, questIDs(list))

	list, err = questService.List(ctx, hero.ID, model.QuestFilterAssigned)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{assigned.ID}, questIDs(list))

	_, err = questService.List(ctx, hero.ID, model.QuestFilter("mine"))
	assert.ErrorIs(t, err, service.ErrInvalidQuestFilter)
}

func TestQuest_ListAcceptedExcludesCancelled(t *testing.T) {
	// AC-QUEST-017: List Quests - Filters
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	hero := f.CreateHero(t)
	other := f.CreateHero(t)

	inProgress := f.CreateAcceptedQuest(t, other, hero)
	// Pre-assigned to the hero but cancelled before any work happened
	f.CreateQuest(t, other, func(o *fixtures.QuestOpts) {
		o.Status = model.QuestStatusCancelled
		o.ReceiverID = hero.ID
	})

	list, err := questService.List(ctx, hero.ID, model.QuestFilterAccepted)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inProgress.ID, list[0].ID)
}

func TestQuest_ConcurrentAccept(t *testing.T) {
	// AC-QUEST-018: Concurrent Accepts - One Winner
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	questService := createQuestService(t, tdb)
	ctx := context.Background()

	creator := f.CreateHero(t)
	first := f.CreateHero(t)
	second := f.CreateHero(t)
	quest := f.CreateQuest(t, creator)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, actor := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(actorID string) {
			defer wg.Done()
			_, err := questService.Accept(ctx, quest.ID, actorID)
			results <- err
		}(actor)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrQuestNotOpen):
			conflicts++
		default:
			t.Fatalf("unexpected accept error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one accept should win")
	assert.Equal(t, 1, conflicts, "the loser should observe a conflict")

	final, err := questService.Get(ctx, quest.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QuestStatusInProgress, final.Status)
	require.NotNil(t, final.ReceiverID)
	assert.Contains(t, []string{first.ID, second.ID}, *final.ReceiverID)
}
