package repository

import (
	"context"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	*Repository[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[models.User](db)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FirstWhere(ctx, Where("email = ?", email))
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.Count(ctx, Where("email = ?", email))
	return count > 0, err
}

func (r *UserRepository) GetByRole(ctx context.Context, roleName string) ([]models.User, error) {
	return r.GetWhere(ctx, Where("role_name = ?", roleName))
}
