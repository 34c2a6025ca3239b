package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jobast/bokkal/internal/domain/model"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not allowed")
	// ErrSelfDemotion guards the last-admin foot-gun: an admin may never
	// remove their own admin flag.
	ErrSelfDemotion = errors.New("admins cannot revoke their own admin flag")
)

// Directory is the slice of the user store the admin surface needs.
type Directory interface {
	GetByID(ctx context.Context, id string) (model.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	SetVerified(ctx context.Context, id string, isVerified bool) error
	List(ctx context.Context, filter pgrepo.UserFilter) ([]pgrepo.UserWithEventCount, int, error)
}

// Service is the admin user-management surface: listing with event counts and
// the two trust-flag toggles.
type Service struct {
	directory Directory
	logger    *zap.Logger
}

func NewService(directory Directory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		directory: directory,
		logger:    logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (model.User, error) {
	user, err := s.directory.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// List returns one page of users with event counts plus the exact total.
func (s *Service) List(ctx context.Context, actorID string, filter pgrepo.UserFilter) ([]pgrepo.UserWithEventCount, int, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, 0, err
	}

	users, total, err := s.directory.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// SetAdmin toggles the admin flag. Self-demotion is refused so the admin set
// can never empty itself by accident; promotion of anyone, including self, is
// a no-op-safe write.
func (s *Service) SetAdmin(ctx context.Context, actorID, targetID string, isAdmin bool) error {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return err
	}

	if !isAdmin && targetID == actor.ID {
		return ErrSelfDemotion
	}

	if err := s.directory.SetAdmin(ctx, targetID, isAdmin); err != nil {
		return fmt.Errorf("set admin flag: %w", err)
	}

	s.logger.Info("admin flag changed",
		zap.String("target_id", targetID),
		zap.Bool("is_admin", isAdmin),
		zap.String("actor_id", actor.ID),
	)

	return nil
}

// SetVerified toggles the verified flag. No self-guard here: verification
// only affects auto-approval of future submissions.
func (s *Service) SetVerified(ctx context.Context, actorID, targetID string, isVerified bool) error {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return err
	}

	if err := s.directory.SetVerified(ctx, targetID, isVerified); err != nil {
		return fmt.Errorf("set verified flag: %w", err)
	}

	s.logger.Info("verified flag changed",
		zap.String("target_id", targetID),
		zap.Bool("is_verified", isVerified),
		zap.String("actor_id", actor.ID),
	)

	return nil
}

func (s *Service) requireAdmin(ctx context.Context, actorID string) (model.User, error) {
	if strings.TrimSpace(actorID) == "" {
		return model.User{}, ErrUnauthenticated
	}

	actor, err := s.directory.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, fmt.Errorf("%w: unknown actor", ErrUnauthenticated)
		}
		return model.User{}, fmt.Errorf("resolve actor: %w", err)
	}
	if !actor.IsAdmin {
		return model.User{}, fmt.Errorf("%w: admin capability required", ErrForbidden)
	}

	return actor, nil
}
