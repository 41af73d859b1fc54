package postgres

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `
	a.id, a.employee_id, a.vacancy_id, a.status, a.cover_letter, a.notes,
	a.salary_expectation::float8, a.availability_date, a.applied_at, a.updated_at,
	v.employer_id, v.title`

const applicationFrom = `
	FROM job_applications a
	JOIN vacancies v ON v.id = a.vacancy_id`

func scanApplication(row pgx.Row) (*domain.JobApplication, error) {
	var app domain.JobApplication
	err := row.Scan(
		&app.ID, &app.EmployeeID, &app.VacancyID, &app.Status, &app.CoverLetter, &app.Notes,
		&app.SalaryExpectation, &app.AvailabilityDate, &app.AppliedAt, &app.UpdatedAt,
		&app.VacancyEmployerID, &app.VacancyTitle,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &app, nil
}

// Create inserts a new application. The (employee_id, vacancy_id) unique constraint
// surfaces as domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `
		INSERT INTO job_applications (employee_id, vacancy_id, status, cover_letter, notes, salary_expectation,
			availability_date, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	return mapErr(conn(ctx, r.db).QueryRow(ctx, query,
		app.EmployeeID,
		app.VacancyID,
		app.Status,
		app.CoverLetter,
		app.Notes,
		app.SalaryExpectation,
		app.AvailabilityDate,
		app.AppliedAt,
		app.UpdatedAt,
	).Scan(&app.ID))
}

// GetByID retrieves an application joined with its vacancy owner
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + applicationFrom + ` WHERE a.id = $1`
	return withReadRetry(ctx, func() (*domain.JobApplication, error) {
		return scanApplication(conn(ctx, r.db).QueryRow(ctx, query, id))
	})
}

// GetByIDForUpdate locks the application row; concurrent transitions on the same
// application serialize behind it.
func (r *applicationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + applicationFrom + ` WHERE a.id = $1 FOR UPDATE OF a`
	return scanApplication(conn(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *applicationRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.JobApplication, error) {
	return r.list(ctx, `WHERE a.employee_id = $1`, employeeID)
}

func (r *applicationRepo) ListByEmployer(ctx context.Context, employerID int64) ([]domain.JobApplication, error) {
	return r.list(ctx, `WHERE v.employer_id = $1`, employerID)
}

func (r *applicationRepo) ListByVacancy(ctx context.Context, vacancyID int64) ([]domain.JobApplication, error) {
	return r.list(ctx, `WHERE a.vacancy_id = $1`, vacancyID)
}

func (r *applicationRepo) list(ctx context.Context, where string, arg int64) ([]domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + applicationFrom + ` ` + where + ` ORDER BY a.applied_at DESC, a.id DESC`

	return withReadRetry(ctx, func() ([]domain.JobApplication, error) {
		rows, err := conn(ctx, r.db).Query(ctx, query, arg)
		if err != nil {
			return nil, mapErr(err)
		}
		defer rows.Close()

		applications := []domain.JobApplication{}
		for rows.Next() {
			app, err := scanApplication(rows)
			if err != nil {
				return nil, err
			}
			applications = append(applications, *app)
		}
		return applications, rows.Err()
	})
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, at time.Time) error {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE job_applications SET status = $1, updated_at = $2 WHERE id = $3`, status, at, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) UpdateNotes(ctx context.Context, id int64, notes *string, at time.Time) error {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE job_applications SET notes = $1, updated_at = $2 WHERE id = $3`, notes, at, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
