package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/model"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not allowed")
)

// EventReader covers the read and edit paths of the record store.
type EventReader interface {
	GetByID(ctx context.Context, id string) (model.Event, error)
	List(ctx context.Context, filter pgrepo.EventFilter) ([]model.Event, error)
	AdminList(ctx context.Context, filter pgrepo.AdminEventFilter) ([]model.Event, int, error)
	UpdateDetails(ctx context.Context, id string, patch pgrepo.EventPatch) error
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status enums.EventStatus) (int, error)
}

// Service answers event queries and owner edits. Moderation transitions live
// elsewhere; an edit here never touches status or the audit fields.
type Service struct {
	events EventReader
	users  UserCounter
	logger *zap.Logger
}

// UserCounter is the slice of the user directory the stats need.
type UserCounter interface {
	GetByID(ctx context.Context, id string) (model.User, error)
	CountAll(ctx context.Context) (int, error)
	CountVerified(ctx context.Context) (int, error)
}

func NewService(events EventReader, users UserCounter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		events: events,
		users:  users,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return model.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// List returns the public listing, soonest event first.
func (s *Service) List(ctx context.Context, filter pgrepo.EventFilter) ([]model.Event, error) {
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// AdminList returns one page of the moderation backlog plus the exact total.
func (s *Service) AdminList(ctx context.Context, actorID string, filter pgrepo.AdminEventFilter) ([]model.Event, int, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, 0, err
	}

	events, total, err := s.events.AdminList(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list admin events: %w", err)
	}
	return events, total, nil
}

// Stats summarizes the dashboard counters.
type Stats struct {
	TotalEvents   int
	PendingEvents int
	TotalUsers    int
	VerifiedUsers int
}

func (s *Service) Stats(ctx context.Context, actorID string) (Stats, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return Stats{}, err
	}

	var stats Stats
	var err error

	if stats.TotalEvents, err = s.events.CountAll(ctx); err != nil {
		return Stats{}, fmt.Errorf("count events: %w", err)
	}
	if stats.PendingEvents, err = s.events.CountByStatus(ctx, enums.EventStatusPending); err != nil {
		return Stats{}, fmt.Errorf("count pending events: %w", err)
	}
	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	if stats.VerifiedUsers, err = s.users.CountVerified(ctx); err != nil {
		return Stats{}, fmt.Errorf("count verified users: %w", err)
	}

	return stats, nil
}

// Update merges an owner edit. The patch can never carry status or audit
// fields, so an edit on a moderated event leaves its decision intact.
func (s *Service) Update(ctx context.Context, actorID, eventID string, patch pgrepo.EventPatch) error {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}

	if !actor.IsAdmin && event.OwnerUserID != actor.ID {
		return fmt.Errorf("%w: only the owner or an admin can edit an event", ErrForbidden)
	}

	if err := s.events.UpdateDetails(ctx, eventID, patch); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("event updated",
		zap.String("event_id", eventID),
		zap.String("actor_id", actor.ID),
	)

	return nil
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

func (s *Service) requireAdmin(ctx context.Context, actorID string) (model.User, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return model.User{}, err
	}
	if !actor.IsAdmin {
		return model.User{}, fmt.Errorf("%w: admin capability required", ErrForbidden)
	}
	return actor, nil
}
