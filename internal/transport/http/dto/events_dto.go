package dto

import "time"

type EventCreateRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Tags            []string `json:"tags,omitempty"`
	LocationName    string   `json:"location_name"`
	LocationCity    string   `json:"location_city"`
	LocationLat     *float64 `json:"location_lat,omitempty"`
	LocationLng     *float64 `json:"location_lng,omitempty"`
	StartDate       string   `json:"start_date"`
	EndDate         *string  `json:"end_date,omitempty"`
	Price           *string  `json:"price,omitempty"`
	TargetAudience  *string  `json:"target_audience,omitempty"`
	ContactPhone    *string  `json:"contact_phone,omitempty"`
	ContactEmail    *string  `json:"contact_email,omitempty"`
	ContactWhatsApp *string  `json:"contact_whatsapp,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
}

type EventUpdateRequest struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Subcategory     *string  `json:"subcategory,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	LocationName    *string  `json:"location_name,omitempty"`
	LocationCity    *string  `json:"location_city,omitempty"`
	LocationLat     *float64 `json:"location_lat,omitempty"`
	LocationLng     *float64 `json:"location_lng,omitempty"`
	StartDate       *string  `json:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty"`
	Price           *string  `json:"price,omitempty"`
	TargetAudience  *string  `json:"target_audience,omitempty"`
	ContactPhone    *string  `json:"contact_phone,omitempty"`
	ContactEmail    *string  `json:"contact_email,omitempty"`
	ContactWhatsApp *string  `json:"contact_whatsapp,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
}

type EventOwnerResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	IsVerified bool   `json:"is_verified"`
	IsAdmin    bool   `json:"is_admin"`
}

type EventResponse struct {
	ID              string              `json:"id"`
	OwnerUserID     string              `json:"user_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Category        string              `json:"category"`
	Subcategory     string              `json:"subcategory"`
	Tags            []string            `json:"tags"`
	LocationName    string              `json:"location_name"`
	LocationCity    string              `json:"location_city"`
	LocationLat     *float64            `json:"location_lat,omitempty"`
	LocationLng     *float64            `json:"location_lng,omitempty"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	Price           *string             `json:"price,omitempty"`
	TargetAudience  *string             `json:"target_audience,omitempty"`
	ContactPhone    *string             `json:"contact_phone,omitempty"`
	ContactEmail    *string             `json:"contact_email,omitempty"`
	ContactWhatsApp *string             `json:"contact_whatsapp,omitempty"`
	ImageURL        *string             `json:"image_url,omitempty"`
	Status          string              `json:"status"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time          `json:"reviewed_at,omitempty"`
	ReviewedBy      *string             `json:"reviewed_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Owner           *EventOwnerResponse `json:"owner,omitempty"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

type DeletedResponse struct {
	OK bool `json:"ok"`
}
