package model

import "time"

// FriendshipStatus represents the state of a friendship request
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

// IsResolved returns true once the request has been answered
func (s FriendshipStatus) IsResolved() bool {
	return s == FriendshipStatusAccepted || s == FriendshipStatusRejected
}

// Friendship represents a mutual-consent relationship request.
//
// For any unordered pair of heroes at most one record may be pending or
// accepted at a time. Rejected records do not block a fresh request.
// Records are never deleted.
type Friendship struct {
	ID         string           `json:"id"`
	SenderID   string           `json:"sender_id"`
	ReceiverID string           `json:"receiver_id"`
	Status     FriendshipStatus `json:"status"`
	CreatedOn  time.Time        `json:"created_on"`
	UpdatedOn  time.Time        `json:"updated_on"`
}

// OtherParty returns the hero on the opposite side of the friendship
func (f *Friendship) OtherParty(heroID string) string {
	if f.SenderID == heroID {
		return f.ReceiverID
	}
	return f.SenderID
}

// Involves returns true if the hero is either side of the friendship
func (f *Friendship) Involves(heroID string) bool {
	return f.SenderID == heroID || f.ReceiverID == heroID
}

// Friend is a listing entry for an accepted friendship
type Friend struct {
	HeroID   string    `json:"hero_id"`
	Username *string   `json:"username,omitempty"`
	Since    time.Time `json:"since"`
}
