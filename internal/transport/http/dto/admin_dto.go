package dto

import "time"

type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

type ModerationResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

type AdminEventListResponse struct {
	Events   []EventResponse `json:"events"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type AdminStatsResponse struct {
	TotalEvents   int `json:"total_events"`
	PendingEvents int `json:"pending_events"`
	TotalUsers    int `json:"total_users"`
	VerifiedUsers int `json:"verified_users"`
}

type AdminUserResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       *string   `json:"phone,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	IsAdmin     bool      `json:"is_admin"`
	EventsCount int       `json:"events_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type AdminUserListResponse struct {
	Users    []AdminUserResponse `json:"users"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

type UserFlagRequest struct {
	Value bool `json:"value"`
}

type UserFlagResponse struct {
	OK bool `json:"ok"`
}
