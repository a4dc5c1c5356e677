package repository

import (
	"context"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"gorm.io/gorm"
)

type ReportRepository struct {
	*Repository[models.Report]
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{Repository: NewRepository[models.Report](db)}
}

func (r *ReportRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Report, error) {
	return r.GetWhere(ctx, Where("user_id = ?", userID))
}
