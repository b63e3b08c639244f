// Package service implements the business logic layer for the Questboard API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # State Machines
//
// Quest and friendship lifecycles are guarded state machines. Services
// validate the transition before calling the repository, and the
// repository enforces the same guard with a conditional update so a race
// between two writers resolves to exactly one winner.
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrQuestNotFound = errors.New("quest not found")
//	    ErrQuestNotOpen  = errors.New("quest is not open")
//	)
//
// # Example Usage
//
//	service := NewQuestService(questRepo, heroRepo, NewRewardEngine(heroRepo))
//	quest, err := service.Create(ctx, heroID, &model.CreateQuestRequest{
//	    Title:       "Slay the laundry pile",
//	    Description: "It grows by the day",
//	    Reward:      25,
//	    Experience:  10,
//	})
package service
