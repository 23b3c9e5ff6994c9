package domain

import "time"

// Profile holds user-editable metadata associated one-to-one with an Identity.
// Created lazily on first access; FullName defaults to the email local-part.
type Profile struct {
	ID        string
	OwnerID   string
	FullName  *string
	Phone     *string
	Company   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
