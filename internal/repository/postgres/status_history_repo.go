package postgres

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statusHistoryRepo struct {
	db *pgxpool.Pool
}

func NewStatusHistoryRepository(db *pgxpool.Pool) domain.StatusHistoryRepository {
	return &statusHistoryRepo{db: db}
}

// Append writes one audit row. Rows are never updated or deleted.
func (r *statusHistoryRepo) Append(ctx context.Context, entry *domain.ApplicationStatusHistory) error {
	query := `
		INSERT INTO application_status_history (application_id, previous_status, new_status, changed_by, reason, changed_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6)
		RETURNING id`

	return mapErr(conn(ctx, r.db).QueryRow(ctx, query,
		entry.ApplicationID,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.ChangedBy,
		entry.Reason,
		entry.ChangedAt,
	).Scan(&entry.ID))
}

// ListByApplication returns the audit trail oldest first
func (r *statusHistoryRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.ApplicationStatusHistory, error) {
	query := `
		SELECT id, application_id, previous_status, new_status, COALESCE(changed_by::text, ''), reason, changed_at
		FROM application_status_history
		WHERE application_id = $1
		ORDER BY changed_at ASC, id ASC`

	return withReadRetry(ctx, func() ([]domain.ApplicationStatusHistory, error) {
		rows, err := conn(ctx, r.db).Query(ctx, query, applicationID)
		if err != nil {
			return nil, mapErr(err)
		}
		defer rows.Close()

		entries := []domain.ApplicationStatusHistory{}
		for rows.Next() {
			var e domain.ApplicationStatusHistory
			if err := rows.Scan(&e.ID, &e.ApplicationID, &e.PreviousStatus, &e.NewStatus, &e.ChangedBy, &e.Reason, &e.ChangedAt); err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return entries, rows.Err()
	})
}
