package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobast/bokkal/internal/domain/enums"
	"github.com/jobast/bokkal/internal/domain/model"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// EventFilter narrows the public listing. Zero values mean "no filter".
type EventFilter struct {
	Status      enums.EventStatus
	Category    enums.EventCategory
	City        enums.City
	OwnerUserID string
}

// AdminEventFilter adds title search and pagination for the admin listing.
type AdminEventFilter struct {
	Status   enums.EventStatus
	Category enums.EventCategory
	City     enums.City
	Search   string
	Page     int
	PageSize int
}

const eventColumns = `
	e.id, e.user_id,
	e.title, e.title_en, e.title_wo,
	e.description, e.description_en, e.description_wo,
	e.category, e.subcategory, COALESCE(e.tags, '{}'::text[]),
	e.location_name, e.location_city, e.location_lat, e.location_lng,
	e.start_date, e.end_date,
	e.price, e.target_audience,
	e.contact_phone, e.contact_email, e.contact_whatsapp,
	e.image_url,
	e.status, e.rejection_reason, e.reviewed_at, e.reviewed_by,
	e.created_at, e.updated_at`

func (r *EventRepo) Insert(ctx context.Context, event model.Event) (model.Event, error) {
	if r.pool == nil {
		return model.Event{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO events (
	id, user_id,
	title, title_en, title_wo,
	description, description_en, description_wo,
	category, subcategory, tags,
	location_name, location_city, location_lat, location_lng,
	start_date, end_date,
	price, target_audience,
	contact_phone, contact_email, contact_whatsapp,
	image_url,
	status, rejection_reason,
	created_at, updated_at
) VALUES (
	$1, $2,
	$3, $4, $5,
	$6, $7, $8,
	$9, $10, $11,
	$12, $13, $14, $15,
	$16, $17,
	$18, $19,
	$20, $21, $22,
	$23,
	$24, NULL,
	NOW(), NOW()
)
RETURNING created_at, updated_at
`,
		event.ID, event.OwnerUserID,
		event.Title, event.TitleEN, event.TitleWO,
		event.Description, event.DescriptionEN, event.DescriptionWO,
		string(event.Category), event.Subcategory, event.Tags,
		event.LocationName, string(event.LocationCity), event.LocationLat, event.LocationLon,
		event.StartDate, event.EndDate,
		event.Price, event.TargetAudience,
		event.ContactPhone, event.ContactEmail, event.ContactWhatsApp,
		event.ImageURL,
		string(event.Status),
	)
	if err := row.Scan(&event.CreatedAt, &event.UpdatedAt); err != nil {
		return model.Event{}, fmt.Errorf("insert event: %w", err)
	}

	return event, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	if r.pool == nil {
		return model.Event{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return model.Event{}, ErrEventNotFound
	}

	query := fmt.Sprintf(`
SELECT %s,
       u.id, COALESCE(u.full_name, ''), u.is_verified, u.is_admin
FROM events e
LEFT JOIN users u ON u.id = e.user_id
WHERE e.id = $1
LIMIT 1
`, eventColumns)

	var (
		event         model.Event
		ownerID       *string
		ownerName     *string
		ownerVerified *bool
		ownerAdmin    *bool
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		eventScanTargets(&event,
			&ownerID, &ownerName, &ownerVerified, &ownerAdmin)...,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, fmt.Errorf("get event by id: %w", err)
	}

	if ownerID != nil {
		event.Owner = &model.User{
			ID:         *ownerID,
			FullName:   derefString(ownerName),
			IsVerified: ownerVerified != nil && *ownerVerified,
			IsAdmin:    ownerAdmin != nil && *ownerAdmin,
		}
	}

	return event, nil
}

// UpdateModeration applies a status transition together with its audit stamp
// in a single statement.
func (r *EventRepo) UpdateModeration(
	ctx context.Context,
	id string,
	status enums.EventStatus,
	rejectionReason *string,
	reviewedBy string,
	reviewedAt time.Time,
) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE events
SET
	status = $2,
	rejection_reason = $3,
	reviewed_at = $4,
	reviewed_by = $5,
	updated_at = NOW()
WHERE id = $1
`, id, string(status), rejectionReason, reviewedAt, reviewedBy)
	if err != nil {
		return fmt.Errorf("update event moderation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

// EventPatch carries the owner-editable fields of an event. Nil pointers are
// left untouched; status and audit fields are never part of a patch.
type EventPatch struct {
	Title           *string
	Description     *string
	Category        *enums.EventCategory
	Subcategory     *string
	Tags            []string
	LocationName    *string
	LocationCity    *enums.City
	LocationLat     *float64
	LocationLon     *float64
	StartDate       *time.Time
	EndDate         *time.Time
	Price           *string
	TargetAudience  *string
	ContactPhone    *string
	ContactEmail    *string
	ContactWhatsApp *string
	ImageURL        *string
}

func (r *EventRepo) UpdateDetails(ctx context.Context, id string, patch EventPatch) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	assignments := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", string(*patch.Category))
	}
	if patch.Subcategory != nil {
		add("subcategory", *patch.Subcategory)
	}
	if patch.Tags != nil {
		add("tags", patch.Tags)
	}
	if patch.LocationName != nil {
		add("location_name", *patch.LocationName)
	}
	if patch.LocationCity != nil {
		add("location_city", string(*patch.LocationCity))
	}
	if patch.LocationLat != nil {
		add("location_lat", *patch.LocationLat)
	}
	if patch.LocationLon != nil {
		add("location_lng", *patch.LocationLon)
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.TargetAudience != nil {
		add("target_audience", *patch.TargetAudience)
	}
	if patch.ContactPhone != nil {
		add("contact_phone", *patch.ContactPhone)
	}
	if patch.ContactEmail != nil {
		add("contact_email", *patch.ContactEmail)
	}
	if patch.ContactWhatsApp != nil {
		add("contact_whatsapp", *patch.ContactWhatsApp)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}

	query := fmt.Sprintf("UPDATE events SET %s WHERE id = $1", strings.Join(assignments, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (r *EventRepo) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	predicates := []string{"TRUE"}
	var args []interface{}

	addPredicate := func(column string, value interface{}) {
		args = append(args, value)
		predicates = append(predicates, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Status != "" {
		addPredicate("e.status", string(filter.Status))
	}
	if filter.Category != "" {
		addPredicate("e.category", string(filter.Category))
	}
	if filter.City != "" {
		addPredicate("e.location_city", string(filter.City))
	}
	if filter.OwnerUserID != "" {
		addPredicate("e.user_id", filter.OwnerUserID)
	}

	query := fmt.Sprintf(`
SELECT %s
FROM events e
WHERE %s
ORDER BY e.start_date ASC
`, eventColumns, strings.Join(predicates, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// AdminList returns one page of events plus the exact total matching the
// filter, newest first.
func (r *EventRepo) AdminList(ctx context.Context, filter AdminEventFilter) ([]model.Event, int, error) {
	if r.pool == nil {
		return nil, 0, fmt.Errorf("postgres pool is nil")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	predicates := []string{"TRUE"}
	var args []interface{}

	addPredicate := func(format string, value interface{}) {
		args = append(args, value)
		predicates = append(predicates, fmt.Sprintf(format, len(args)))
	}

	if filter.Status != "" {
		addPredicate("e.status = $%d", string(filter.Status))
	}
	if filter.Category != "" {
		addPredicate("e.category = $%d", string(filter.Category))
	}
	if filter.City != "" {
		addPredicate("e.location_city = $%d", string(filter.City))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		addPredicate("e.title ILIKE $%d", "%"+search+"%")
	}

	where := strings.Join(predicates, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM events e WHERE %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count admin events: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
SELECT %s
FROM events e
WHERE %s
ORDER BY e.created_at DESC
LIMIT $%d OFFSET $%d
`, eventColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list admin events: %w", err)
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventRepo) CountAll(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "TRUE")
}

func (r *EventRepo) CountByStatus(ctx context.Context, status enums.EventStatus) (int, error) {
	return r.countWhere(ctx, "status = $1", string(status))
}

// DeleteRejectedBefore removes rejected events whose review predates the
// cutoff. Used by the retention job only.
func (r *EventRepo) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM events
WHERE status = 'rejected'
  AND reviewed_at IS NOT NULL
  AND reviewed_at < $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete rejected events: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *EventRepo) countWhere(ctx context.Context, where string, args ...interface{}) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", where), args...,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}

	return count, nil
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var event model.Event
		if err := rows.Scan(eventScanTargets(&event)...); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}

func eventScanTargets(event *model.Event, extra ...interface{}) []interface{} {
	targets := []interface{}{
		&event.ID, &event.OwnerUserID,
		&event.Title, &event.TitleEN, &event.TitleWO,
		&event.Description, &event.DescriptionEN, &event.DescriptionWO,
		(*string)(&event.Category), &event.Subcategory, &event.Tags,
		&event.LocationName, (*string)(&event.LocationCity), &event.LocationLat, &event.LocationLon,
		&event.StartDate, &event.EndDate,
		&event.Price, &event.TargetAudience,
		&event.ContactPhone, &event.ContactEmail, &event.ContactWhatsApp,
		&event.ImageURL,
		(*string)(&event.Status), &event.RejectionReason, &event.ReviewedAt, &event.ReviewedBy,
		&event.CreatedAt, &event.UpdatedAt,
	}
	return append(targets, extra...)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
