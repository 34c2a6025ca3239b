package model

import (
	"time"

	"github.com/jobast/bokkal/internal/domain/enums"
)

type Event struct {
	ID              string
	OwnerUserID     string
	Title           string
	TitleEN         *string
	TitleWO         *string
	Description     string
	DescriptionEN   *string
	DescriptionWO   *string
	Category        enums.EventCategory
	Subcategory     string
	Tags            []string
	LocationName    string
	LocationCity    enums.City
	LocationLat     *float64
	LocationLon     *float64
	StartDate       time.Time
	EndDate         *time.Time
	Price           *string
	TargetAudience  *string
	ContactPhone    *string
	ContactEmail    *string
	ContactWhatsApp *string
	ImageURL        *string

	Status          enums.EventStatus
	RejectionReason *string
	ReviewedAt      *time.Time
	ReviewedBy      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined owner data, present on detail reads.
	Owner *User
}
