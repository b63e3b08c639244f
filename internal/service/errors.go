package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Hero Errors =====
var (
	ErrHeroNotFound     = errors.New("hero not found")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidHeroClass = errors.New("invalid hero class")
)

// ===== Quest Errors =====
var (
	ErrQuestNotFound            = errors.New("quest not found")
	ErrQuestTitleRequired       = errors.New("quest title is required")
	ErrQuestDescriptionRequired = errors.New("quest description is required")
	ErrInvalidDifficulty        = errors.New("invalid quest difficulty")
	ErrInvalidCategory          = errors.New("invalid quest category")
	ErrNegativeReward           = errors.New("reward must be non-negative")
	ErrNegativeExperience       = errors.New("experience must be non-negative")
	ErrInvalidQuestFilter       = errors.New("invalid quest filter")
	ErrQuestNotOpen             = errors.New("quest is no longer open")
	ErrQuestNotInProgress       = errors.New("quest is not in progress")
	ErrCannotAcceptOwnQuest     = errors.New("cannot accept your own quest")
	ErrQuestAssignedElsewhere   = errors.New("quest is assigned to another hero")
	ErrNotQuestReceiver         = errors.New("not the receiver of this quest")
	ErrNotQuestCreator          = errors.New("not the creator of this quest")
	ErrRewardCommitFailed       = errors.New("quest completion did not commit")
)

// ===== Friendship Errors =====
var (
	ErrFriendshipNotFound    = errors.New("friendship not found")
	ErrCannotBefriendSelf    = errors.New("cannot send a friend request to yourself")
	ErrFriendshipExists      = errors.New("a pending or accepted friendship already exists")
	ErrFriendshipResolved    = errors.New("friendship request already resolved")
	ErrNotFriendshipReceiver = errors.New("not the receiver of this friend request")
)
