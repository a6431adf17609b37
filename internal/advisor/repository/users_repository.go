package repository

import (
	"context"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

// UsersRepository resolves notification owners. User lifecycle itself is
// managed by an external identity service.
type UsersRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

type usersRepository struct {
	db *gorm.DB
}

// NewUsersRepository creates a new GORM-based users repository.
func NewUsersRepository(db *gorm.DB) UsersRepository {
	return &usersRepository{db: db}
}

// FindByID retrieves a user by ID.
func (r *usersRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
