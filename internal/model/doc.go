// Package model defines domain entities and data structures for the Questboard API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Hero: A player account with class, level, experience, and gold
//   - Quest: A task with a reward, owned by a creator and optionally
//     assigned to a receiver
//   - Friendship: A mutual-consent relationship request between two heroes
//
// # State Machines
//
// Quest and Friendship statuses are enum-like string types. Quest
// transition validity is encoded in NextQuestStatus as a pure function of
// (current status, action), independent of persistence, so the lifecycle
// rules can be tested in isolation.
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Quest struct {
//	    ID     string      `json:"id"`
//	    Title  string      `json:"title"`
//	    Status QuestStatus `json:"status"`
//	}
//
// # Error Handling
//
// ProblemDetails implements RFC 9457 Problem Details and is the wire format
// for every error response. Constructors exist for the common cases
// (validation, not found, forbidden, conflict, transaction, internal).
package model
