package postgres

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type principalRepo struct {
	db *pgxpool.Pool
}

func NewPrincipalRepository(db *pgxpool.Pool) domain.PrincipalRepository {
	return &principalRepo{db: db}
}

// GetByUserID loads the identity with whichever profiles it owns.
func (r *principalRepo) GetByUserID(ctx context.Context, userID string) (*domain.Principal, error) {
	query := `
		SELECT u.id::text, u.email, u.role, er.id, er.company_name, ee.id
		FROM users u
		LEFT JOIN employer_profiles er ON er.user_id = u.id
		LEFT JOIN employee_profiles ee ON ee.user_id = u.id
		WHERE u.id = $1::uuid`

	return withReadRetry(ctx, func() (*domain.Principal, error) {
		var (
			p           domain.Principal
			employerID  *int64
			companyName *string
			employeeID  *int64
		)
		err := conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
			&p.UserID, &p.Email, &p.Role, &employerID, &companyName, &employeeID,
		)
		if err != nil {
			return nil, mapErr(err)
		}
		if employerID != nil {
			p.Employer = &domain.EmployerCapability{ProfileID: *employerID}
			if companyName != nil {
				p.Employer.CompanyName = *companyName
			}
		}
		if employeeID != nil {
			p.Employee = &domain.EmployeeCapability{ProfileID: *employeeID}
		}
		return &p, nil
	})
}
