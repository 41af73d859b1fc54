package sqlite

import (
	"context"

	"job-board-backend/internal/domain"

	"gorm.io/gorm"
)

type statusHistoryRepo struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) domain.StatusHistoryRepository {
	return &statusHistoryRepo{db: db}
}

func (r *statusHistoryRepo) Append(ctx context.Context, entry *domain.ApplicationStatusHistory) error {
	m := statusHistoryModel{
		ApplicationID:  entry.ApplicationID,
		PreviousStatus: string(entry.PreviousStatus),
		NewStatus:      string(entry.NewStatus),
		ChangedBy:      entry.ChangedBy,
		Reason:         entry.Reason,
		ChangedAt:      entry.ChangedAt,
	}
	if err := dbFrom(ctx, r.db).Create(&m).Error; err != nil {
		return mapErr(err)
	}
	entry.ID = m.ID
	return nil
}

func (r *statusHistoryRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.ApplicationStatusHistory, error) {
	var models []statusHistoryModel
	err := dbFrom(ctx, r.db).Where("application_id = ?", applicationID).
		Order("changed_at ASC").Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, mapErr(err)
	}

	entries := make([]domain.ApplicationStatusHistory, 0, len(models))
	for i := range models {
		entries = append(entries, models[i].toDomain())
	}
	return entries, nil
}
