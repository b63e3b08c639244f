package handler

import (
	"errors"

	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authorization Errors → 403 =====
	// Accepting your own quest is a permission failure, not bad input:
	// the request is well-formed, the actor just may not make the move.
	case errors.Is(err, service.ErrNotQuestCreator),
		errors.Is(err, service.ErrNotQuestReceiver),
		errors.Is(err, service.ErrCannotAcceptOwnQuest),
		errors.Is(err, service.ErrNotFriendshipReceiver):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrHeroNotFound):
		return model.NewNotFoundError("hero")
	case errors.Is(err, service.ErrQuestNotFound):
		return model.NewNotFoundError("quest")
	case errors.Is(err, service.ErrFriendshipNotFound):
		return model.NewNotFoundError("friendship")

	// ===== Conflict Errors → 409 =====
	// Lifecycle guards: the record exists but its state forbids the action
	case errors.Is(err, service.ErrQuestNotOpen),
		errors.Is(err, service.ErrQuestNotInProgress),
		errors.Is(err, service.ErrQuestAssignedElsewhere),
		errors.Is(err, service.ErrFriendshipExists),
		errors.Is(err, service.ErrFriendshipResolved):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrQuestTitleRequired),
		errors.Is(err, service.ErrQuestDescriptionRequired):
		return model.NewValidationError([]model.FieldError{{Field: "quest", Message: err.Error()}})

	case errors.Is(err, service.ErrNegativeReward):
		return model.NewValidationError([]model.FieldError{{Field: "reward", Message: err.Error()}})
	case errors.Is(err, service.ErrNegativeExperience):
		return model.NewValidationError([]model.FieldError{{Field: "experience", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidDifficulty):
		return model.NewValidationError([]model.FieldError{{Field: "difficulty", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidCategory):
		return model.NewValidationError([]model.FieldError{{Field: "category", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidQuestFilter):
		return model.NewValidationError([]model.FieldError{{Field: "filter", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidTheme):
		return model.NewValidationError([]model.FieldError{{Field: "theme", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidHeroClass):
		return model.NewValidationError([]model.FieldError{{Field: "hero_class", Message: err.Error()}})

	// A self-addressed friend request is malformed input
	case errors.Is(err, service.ErrCannotBefriendSelf):
		return model.NewValidationError([]model.FieldError{{Field: "target", Message: err.Error()}})

	// ===== Transaction Errors → 500 =====
	case errors.Is(err, service.ErrRewardCommitFailed):
		return model.NewTransactionError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Code == model.ErrCodeInternal {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
