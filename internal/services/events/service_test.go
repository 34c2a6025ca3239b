package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/model"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
)

type fakeEventReader struct {
	events  map[string]model.Event
	patches map[string]pgrepo.EventPatch
}

func newFakeEventReader() *fakeEventReader {
	return &fakeEventReader{
		events:  make(map[string]model.Event),
		patches: make(map[string]pgrepo.EventPatch),
	}
}

func (r *fakeEventReader) GetByID(_ context.Context, id string) (model.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return model.Event{}, pgrepo.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventReader) List(_ context.Context, filter pgrepo.EventFilter) ([]model.Event, error) {
	var out []model.Event
	for _, event := range r.events {
		if filter.Status != "" && event.Status != filter.Status {
			continue
		}
		if filter.City != "" && event.LocationCity != filter.City {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

func (r *fakeEventReader) AdminList(_ context.Context, _ pgrepo.AdminEventFilter) ([]model.Event, int, error) {
	var out []model.Event
	for _, event := range r.events {
		out = append(out, event)
	}
	return out, len(out), nil
}

func (r *fakeEventReader) UpdateDetails(_ context.Context, id string, patch pgrepo.EventPatch) error {
	event, ok := r.events[id]
	if !ok {
		return pgrepo.ErrEventNotFound
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	event.UpdatedAt = time.Now()
	r.events[id] = event
	r.patches[id] = patch
	return nil
}

func (r *fakeEventReader) CountAll(_ context.Context) (int, error) {
	return len(r.events), nil
}

func (r *fakeEventReader) CountByStatus(_ context.Context, status enums.EventStatus) (int, error) {
	var count int
	for _, event := range r.events {
		if event.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeUserCounter struct {
	users map[string]model.User
}

func (c *fakeUserCounter) GetByID(_ context.Context, id string) (model.User, error) {
	user, ok := c.users[id]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (c *fakeUserCounter) CountAll(_ context.Context) (int, error) {
	return len(c.users), nil
}

func (c *fakeUserCounter) CountVerified(_ context.Context) (int, error) {
	var count int
	for _, user := range c.users {
		if user.IsVerified {
			count++
		}
	}
	return count, nil
}

var (
	adminID = uuid.NewString()
	ownerID = uuid.NewString()
	otherID = uuid.NewString()
)

func newTestService() (*Service, *fakeEventReader) {
	reader := newFakeEventReader()
	counter := &fakeUserCounter{users: map[string]model.User{
		adminID: {ID: adminID, IsAdmin: true},
		ownerID: {ID: ownerID, IsVerified: true},
		otherID: {ID: otherID},
	}}
	return NewService(reader, counter, nil), reader
}

func seedEvent(reader *fakeEventReader, ownerUserID string, status enums.EventStatus) model.Event {
	event := model.Event{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Title:       "Marché artisanal",
		Status:      status,
	}
	reader.events[event.ID] = event
	return event
}

func TestUpdateNeverTouchesStatus(t *testing.T) {
	service, reader := newTestService()
	event := seedEvent(reader, ownerID, enums.EventStatusApproved)

	title := "Marché artisanal de la Somone"
	if err := service.Update(context.Background(), ownerID, event.ID, pgrepo.EventPatch{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := reader.events[event.ID]
	if stored.Title != title {
		t.Fatalf("title not updated: %s", stored.Title)
	}
	if stored.Status != enums.EventStatusApproved {
		t.Fatalf("status changed by edit: %s", stored.Status)
	}
}

func TestUpdateAuthorization(t *testing.T) {
	service, reader := newTestService()
	event := seedEvent(reader, ownerID, enums.EventStatusPending)
	title := "Nouveau titre"

	if err := service.Update(context.Background(), otherID, event.ID, pgrepo.EventPatch{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := service.Update(context.Background(), "", event.ID, pgrepo.EventPatch{Title: &title}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, patched := reader.patches[event.ID]; patched {
		t.Fatalf("forbidden edit reached the store")
	}

	if err := service.Update(context.Background(), adminID, event.ID, pgrepo.EventPatch{Title: &title}); err != nil {
		t.Fatalf("admin edit: %v", err)
	}
}

func TestStatsCountsEventsAndUsers(t *testing.T) {
	service, reader := newTestService()
	seedEvent(reader, ownerID, enums.EventStatusApproved)
	seedEvent(reader, ownerID, enums.EventStatusPending)
	seedEvent(reader, otherID, enums.EventStatusPending)

	stats, err := service.Stats(context.Background(), adminID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEvents != 3 || stats.PendingEvents != 2 {
		t.Fatalf("unexpected event counts: %+v", stats)
	}
	if stats.TotalUsers != 3 || stats.VerifiedUsers != 1 {
		t.Fatalf("unexpected user counts: %+v", stats)
	}
}

func TestAdminSurfacesRequireAdmin(t *testing.T) {
	service, reader := newTestService()
	seedEvent(reader, ownerID, enums.EventStatusPending)

	if _, err := service.Stats(context.Background(), ownerID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stats by non-admin: expected ErrForbidden, got %v", err)
	}
	if _, _, err := service.AdminList(context.Background(), ownerID, pgrepo.AdminEventFilter{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin list by non-admin: expected ErrForbidden, got %v", err)
	}
	if _, _, err := service.AdminList(context.Background(), adminID, pgrepo.AdminEventFilter{}); err != nil {
		t.Fatalf("admin list: %v", err)
	}
}

func TestGetByIDMissing(t *testing.T) {
	service, _ := newTestService()
	if _, err := service.GetByID(context.Background(), uuid.NewString()); !errors.Is(err, pgrepo.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
