package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/debtdesk/internal/models"
)

// UserRepository provides persistence access for users and their sessions.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a repository using the provided gorm DB.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns the user by id.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &u, nil
}

// Save persists the modified user.
func (r *UserRepository) Save(ctx context.Context, u *models.User) error {
	return errors.WithStack(r.db.WithContext(ctx).Save(u).Error)
}

// List returns users ordered by creation time descending.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, errors.WithStack(err)
}

// FindBySessionToken resolves an unexpired session token to its user.
func (r *UserRepository) FindBySessionToken(ctx context.Context, token string) (*models.User, error) {
	var sess models.Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now().UTC()).
		First(&sess).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return r.FindByID(ctx, sess.UserID)
}
