package models

import "time"

// User represents a registered account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Friend represents a tracked contact of a user. FriendUserID is set when
// the contact resolves to a registered account.
type Friend struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FriendUserID *string   `json:"friend_user_id,omitempty"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	ContactType  string    `json:"contact_type"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FriendRequestStatus is the lifecycle state of a friend request
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest represents a tracking request sent to a contact
type FriendRequest struct {
	ID               string              `json:"id"`
	SenderID         string              `json:"sender_id"`
	RecipientID      *string             `json:"recipient_id,omitempty"`
	RecipientContact string              `json:"recipient_contact"`
	ContactType      string              `json:"contact_type"`
	Status           FriendRequestStatus `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	ResolvedAt       *time.Time          `json:"resolved_at,omitempty"`
}

// Circle represents a named group of friends
type Circle struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JoinCode    string    `json:"join_code"`
	CreatedBy   string    `json:"created_by"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CircleMember is a denormalized snapshot of a member at join time.
// Later edits to the underlying friend or user do not propagate here.
type CircleMember struct {
	CircleID string    `json:"circle_id"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	JoinedAt time.Time `json:"joined_at"`
}

// Location is a recorded position of a user
type Location struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CircleID   *string   `json:"circle_id,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// LocationShare is a grant from an owner letting a friend see their location
type LocationShare struct {
	OwnerID   string    `json:"owner_id"`
	FriendID  string    `json:"friend_id"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}
