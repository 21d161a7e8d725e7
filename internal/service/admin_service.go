package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/debtdesk/internal/models"
	"github.com/example/debtdesk/internal/repository"
)

// AdminService covers user management and the dashboard aggregation.
type AdminService struct {
	users UserStore
	stats StatsStore
}

// NewAdminService builds a service with dependencies.
func NewAdminService(users UserStore, stats StatsStore) *AdminService {
	return &AdminService{users: users, stats: stats}
}

// ListUsers returns accounts for the back office.
func (s *AdminService) ListUsers(ctx context.Context, caller *models.User, limit, offset int) ([]models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.users.List(ctx, limit, offset)
}

// SetUserRole changes an account's role. Administrators cannot demote
// themselves, which would lock the last admin out mid-session.
func (s *AdminService) SetUserRole(ctx context.Context, caller *models.User, id uuid.UUID, role models.Role) (*models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidInput
	}
	if id == caller.ID && role != models.RoleAdmin {
		return nil, ErrInvalidInput
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	u.Role = role
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Dashboard returns the aggregated back-office figures.
func (s *AdminService) Dashboard(ctx context.Context, caller *models.User) (*repository.DashboardStats, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.stats.Dashboard(ctx)
}
