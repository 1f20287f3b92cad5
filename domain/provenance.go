package domain

import "time"

// MessageProvenance links a relayed message to the user who wrote it.
type MessageProvenance struct {
	AuthorID  string
	MessageID string
	CreatedAt time.Time
}

// UserPreference is the stored default selector of a user.
type UserPreference struct {
	UserID    string
	Selector  string
	UpdatedAt time.Time
}
