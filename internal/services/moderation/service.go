package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/model"
	"github.com/jobast/bokkal/internal/pkg/validate"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
)

var (
	// ErrValidation marks a submission that fails field validation. The
	// wrapped message names the offending field.
	ErrValidation = errors.New("invalid event submission")
	// ErrUnauthenticated marks a call without a resolvable actor.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden marks a call whose actor lacks the required capability.
	ErrForbidden = errors.New("operation not allowed")
)

// EventStore is the slice of the record store the engine mutates.
type EventStore interface {
	Insert(ctx context.Context, event model.Event) (model.Event, error)
	GetByID(ctx context.Context, id string) (model.Event, error)
	UpdateModeration(ctx context.Context, id string, status enums.EventStatus, rejectionReason *string, reviewedBy string, reviewedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// UserDirectory resolves actors to their persisted trust flags. Every
// privileged call re-reads the flags here instead of trusting the token.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (model.User, error)
}

// Service is the event submission and moderation engine: it decides the
// initial status of a submission from the submitter's trust flags and owns
// every status transition afterwards.
type Service struct {
	events EventStore
	users  UserDirectory
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewService(events EventStore, users UserDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		events: events,
		users:  users,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Submission carries the user-supplied fields of a new event. Everything
// status-related is decided by the engine, never by the caller.
type Submission struct {
	Title           string
	Description     string
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
}

// Submit validates the submission and persists it. The initial status is
// approved when the submitter is an admin or verified at this moment, pending
// otherwise; later flag changes never revisit the decision.
func (s *Service) Submit(ctx context.Context, actorID string, submission Submission) (model.Event, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return model.Event{}, err
	}

	if err := validateSubmission(submission); err != nil {
		return model.Event{}, err
	}

	status := enums.EventStatusPending
	if actor.IsAdmin || actor.IsVerified {
		status = enums.EventStatusApproved
	}

	event := model.Event{
		ID:              s.newID(),
		OwnerUserID:     actor.ID,
		Title:           strings.TrimSpace(submission.Title),
		Description:     strings.TrimSpace(submission.Description),
		Category:        submission.Category,
		Subcategory:     submission.Subcategory,
		Tags:            submission.Tags,
		LocationName:    strings.TrimSpace(submission.LocationName),
		LocationCity:    submission.LocationCity,
		LocationLat:     submission.LocationLat,
		LocationLon:     submission.LocationLon,
		StartDate:       submission.StartDate,
		EndDate:         submission.EndDate,
		Price:           submission.Price,
		TargetAudience:  submission.TargetAudience,
		ContactPhone:    submission.ContactPhone,
		ContactEmail:    submission.ContactEmail,
		ContactWhatsApp: submission.ContactWhatsApp,
		ImageURL:        submission.ImageURL,
		Status:          status,
	}

	created, err := s.events.Insert(ctx, event)
	if err != nil {
		return model.Event{}, fmt.Errorf("persist submission: %w", err)
	}

	s.logger.Info("event submitted",
		zap.String("event_id", created.ID),
		zap.String("owner_id", actor.ID),
		zap.String("status", string(created.Status)),
	)

	return created, nil
}

// Approve moves the event to approved, clears any earlier rejection reason
// and stamps the reviewer. Admin only; valid from any current status.
func (s *Service) Approve(ctx context.Context, actorID, eventID string) error {
	admin, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return err
	}

	if err := s.events.UpdateModeration(ctx, eventID, enums.EventStatusApproved, nil, admin.ID, s.now()); err != nil {
		return fmt.Errorf("approve event: %w", err)
	}

	s.logger.Info("event approved",
		zap.String("event_id", eventID),
		zap.String("reviewed_by", admin.ID),
	)

	return nil
}

// Reject moves the event to rejected with an optional reason and stamps the
// reviewer. Admin only; valid from any current status.
func (s *Service) Reject(ctx context.Context, actorID, eventID, reason string) error {
	admin, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return err
	}

	var rejectionReason *string
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		rejectionReason = &trimmed
	}

	if err := s.events.UpdateModeration(ctx, eventID, enums.EventStatusRejected, rejectionReason, admin.ID, s.now()); err != nil {
		return fmt.Errorf("reject event: %w", err)
	}

	s.logger.Info("event rejected",
		zap.String("event_id", eventID),
		zap.String("reviewed_by", admin.ID),
		zap.Bool("with_reason", rejectionReason != nil),
	)

	return nil
}

// Delete removes the event permanently. The actor must be the owner or an
// admin; the event's status does not matter.
func (s *Service) Delete(ctx context.Context, actorID, eventID string) error {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}

	if !CanDelete(actor, event) {
		return fmt.Errorf("%w: only the owner or an admin can delete an event", ErrForbidden)
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event deleted",
		zap.String("event_id", eventID),
		zap.String("actor_id", actor.ID),
	)

	return nil
}

// CanModerate reports whether the user may approve or reject events.
func CanModerate(user model.User) bool {
	return user.IsAdmin
}

// CanDelete reports whether the user may delete the event.
func CanDelete(user model.User, event model.Event) bool {
	return user.IsAdmin || event.OwnerUserID == user.ID
}

func (s *Service) resolveActor(ctx context.Context, actorID string) (model.User, error) {
	if strings.TrimSpace(actorID) == "" {
		return model.User{}, ErrUnauthenticated
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, fmt.Errorf("%w: unknown actor", ErrUnauthenticated)
		}
		return model.User{}, fmt.Errorf("resolve actor: %w", err)
	}

	return actor, nil
}

// requireAdmin resolves the actor and re-derives the admin capability from
// the persisted flags, never from anything carried in the token.
func (s *Service) requireAdmin(ctx context.Context, actorID string) (model.User, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return model.User{}, err
	}
	if !CanModerate(actor) {
		return model.User{}, fmt.Errorf("%w: admin capability required", ErrForbidden)
	}
	return actor, nil
}

func validateSubmission(submission Submission) error {
	if !validate.Required(submission.Title) {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !validate.Required(submission.Description) {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !submission.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, submission.Category)
	}
	if submission.Subcategory == "" || !submission.Category.HasSubcategory(submission.Subcategory) {
		return fmt.Errorf("%w: unknown subcategory %q for category %q", ErrValidation, submission.Subcategory, submission.Category)
	}
	if !validate.Required(submission.LocationName) {
		return fmt.Errorf("%w: location name is required", ErrValidation)
	}
	if !submission.LocationCity.Valid() {
		return fmt.Errorf("%w: unknown city %q", ErrValidation, submission.LocationCity)
	}
	if submission.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrValidation)
	}
	if submission.EndDate != nil && submission.EndDate.Before(submission.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}
	return nil
}
