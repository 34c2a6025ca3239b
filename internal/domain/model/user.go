package model

import "time"

// User mirrors the user directory record. IsVerified and IsAdmin are the
// trust flags that drive auto-approval and administrative capability.
type User struct {
	ID         string
	FullName   string
	Phone      *string
	AvatarURL  *string
	IsVerified bool
	IsAdmin    bool
	CreatedAt  time.Time
}
