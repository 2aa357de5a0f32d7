package client

import "time"

// Account is the signed-in user as the backend reports it
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is returned by Signup and Login
type Session struct {
	User  Account `json:"user"`
	Token string  `json:"token"`
}

// Friend is a tracked contact
type Friend struct {
	ID           string    `json:"id"`
	FriendUserID *string   `json:"friend_user_id,omitempty"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	ContactType  string    `json:"contact_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// PendingRequest is a friend request awaiting a response
type PendingRequest struct {
	ID          string        `json:"id"`
	Contact     string        `json:"contact"`
	ContactType string        `json:"contact_type"`
	Sender      RequestSender `json:"sender"`
	SentAt      time.Time     `json:"sent_at"`
	Status      string        `json:"status"`
}

// RequestSender is the denormalized sender snapshot on a pending request
type RequestSender struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Circle is a named group with a snapshot member list
type Circle struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JoinCode    string    `json:"join_code"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// CircleMember is a snapshot of a member at join time
type CircleMember struct {
	CircleID string    `json:"circle_id"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	JoinedAt time.Time `json:"joined_at"`
}

// Location is a recorded position
type Location struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CircleID   *string   `json:"circle_id,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Share is a location-sharing grant
type Share struct {
	OwnerID   string    `json:"owner_id"`
	FriendID  string    `json:"friend_id"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvatarUpload is the presigned upload the backend hands back
type AvatarUpload struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	ExpiresIn int    `json:"expires_in"`
}
