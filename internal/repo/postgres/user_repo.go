package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobast/bokkal/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepo is the user directory: it owns the trust flags every mutating
// operation re-derives authorization from.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Search     string
	IsAdmin    *bool
	IsVerified *bool
	Page       int
	PageSize   int
}

// UserWithEventCount decorates a user with how many events they submitted.
type UserWithEventCount struct {
	model.User
	EventsCount int
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return model.User{}, ErrUserNotFound
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, COALESCE(full_name, ''), phone, avatar_url, is_verified, is_admin, created_at
FROM users
WHERE id = $1
LIMIT 1
`, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Phone,
		&user.AvatarURL,
		&user.IsVerified,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepo) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return r.setFlag(ctx, id, "is_admin", isAdmin)
}

func (r *UserRepo) SetVerified(ctx context.Context, id string, isVerified bool) error {
	return r.setFlag(ctx, id, "is_verified", isVerified)
}

func (r *UserRepo) setFlag(ctx context.Context, id, column string, value bool) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf("UPDATE users SET %s = $2 WHERE id = $1", column), id, value)
	if err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// List returns one page of users with their event counts plus the exact
// total matching the filter, newest first.
func (r *UserRepo) List(ctx context.Context, filter UserFilter) ([]UserWithEventCount, int, error) {
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

	if search := strings.TrimSpace(filter.Search); search != "" {
		addPredicate("u.full_name ILIKE $%d", "%"+search+"%")
	}
	if filter.IsAdmin != nil {
		addPredicate("u.is_admin = $%d", *filter.IsAdmin)
	}
	if filter.IsVerified != nil {
		addPredicate("u.is_verified = $%d", *filter.IsVerified)
	}

	where := strings.Join(predicates, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM users u WHERE %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
SELECT u.id, COALESCE(u.full_name, ''), u.phone, u.avatar_url, u.is_verified, u.is_admin, u.created_at,
       COALESCE(ec.events_count, 0)
FROM users u
LEFT JOIN (
	SELECT user_id, COUNT(*) AS events_count
	FROM events
	GROUP BY user_id
) ec ON ec.user_id = u.id
WHERE %s
ORDER BY u.created_at DESC
LIMIT $%d OFFSET $%d
`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []UserWithEventCount
	for rows.Next() {
		var user UserWithEventCount
		if err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Phone,
			&user.AvatarURL,
			&user.IsVerified,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.EventsCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, total, nil
}

func (r *UserRepo) CountAll(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "TRUE")
}

func (r *UserRepo) CountVerified(ctx context.Context) (int, error) {
	return r.countWhere(ctx, "is_verified = TRUE")
}

func (r *UserRepo) countWhere(ctx context.Context, where string) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM users WHERE %s", where),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}
