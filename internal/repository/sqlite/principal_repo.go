package sqlite

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"

	"gorm.io/gorm"
)

type principalRepo struct {
	db *gorm.DB
}

func NewPrincipalRepository(db *gorm.DB) domain.PrincipalRepository {
	return &principalRepo{db: db}
}

func (r *principalRepo) GetByUserID(ctx context.Context, userID string) (*domain.Principal, error) {
	db := dbFrom(ctx, r.db)

	var u userModel
	if err := db.Where("id = ?", userID).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	p := &domain.Principal{UserID: u.ID, Email: u.Email, Role: domain.Role(u.Role)}

	var employer employerProfileModel
	switch err := db.Where("user_id = ?", userID).First(&employer).Error; {
	case err == nil:
		p.Employer = &domain.EmployerCapability{ProfileID: employer.ID, CompanyName: employer.CompanyName}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var employee employeeProfileModel
	switch err := db.Where("user_id = ?", userID).First(&employee).Error; {
	case err == nil:
		p.Employee = &domain.EmployeeCapability{ProfileID: employee.ID}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return p, nil
}
