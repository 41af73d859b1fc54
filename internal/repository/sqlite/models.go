package sqlite

import (
	"time"

	"job-board-backend/internal/domain"

	"gorm.io/gorm"
)

type userModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Role      string `gorm:"size:20;not null"`
	CreatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type employerProfileModel struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      string `gorm:"size:36;uniqueIndex;not null"`
	CompanyName string `gorm:"size:255;not null"`
	CreatedAt   time.Time
}

func (employerProfileModel) TableName() string { return "employer_profiles" }

type employeeProfileModel struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    string `gorm:"size:36;uniqueIndex;not null"`
	CreatedAt time.Time
}

func (employeeProfileModel) TableName() string { return "employee_profiles" }

type technologyModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
}

func (technologyModel) TableName() string { return "technologies" }

type vacancyModel struct {
	ID                 int64                `gorm:"primaryKey"`
	EmployerID         int64                `gorm:"index;not null"`
	Employer           employerProfileModel `gorm:"foreignKey:EmployerID"`
	Title              string               `gorm:"size:100;not null"`
	Description        string               `gorm:"size:1000;not null"`
	Modality           string               `gorm:"size:10;not null;default:hybrid"`
	Location           string               `gorm:"size:100;not null"`
	SalaryMin          *float64
	SalaryMax          *float64
	ExperienceRequired string `gorm:"size:50"`
	PublicationDate    time.Time
	ClosingDate        *time.Time
	State              string `gorm:"size:10;not null;default:open"`
	UpdatedAt          time.Time
}

func (vacancyModel) TableName() string { return "vacancies" }

type vacancyTechnologyModel struct {
	VacancyID    int64 `gorm:"primaryKey"`
	TechnologyID int64 `gorm:"primaryKey"`
}

func (vacancyTechnologyModel) TableName() string { return "vacancy_technologies" }

type applicationModel struct {
	ID                int64        `gorm:"primaryKey"`
	EmployeeID        int64        `gorm:"not null;uniqueIndex:idx_job_applications_employee_vacancy"`
	VacancyID         int64        `gorm:"not null;uniqueIndex:idx_job_applications_employee_vacancy;index"`
	Vacancy           vacancyModel `gorm:"foreignKey:VacancyID"`
	Status            string       `gorm:"size:20;not null;index"`
	CoverLetter       string       `gorm:"size:1000"`
	Notes             *string
	SalaryExpectation *float64
	AvailabilityDate  *time.Time
	AppliedAt         time.Time
	UpdatedAt         time.Time
}

func (applicationModel) TableName() string { return "job_applications" }

type statusHistoryModel struct {
	ID             int64  `gorm:"primaryKey"`
	ApplicationID  int64  `gorm:"not null;index"`
	PreviousStatus string `gorm:"size:20;not null"`
	NewStatus      string `gorm:"size:20;not null"`
	ChangedBy      string `gorm:"size:36"`
	Reason         string `gorm:"size:500"`
	ChangedAt      time.Time
}

func (statusHistoryModel) TableName() string { return "application_status_history" }

type interviewModel struct {
	ID              int64  `gorm:"primaryKey"`
	ApplicationID   int64  `gorm:"not null;index"`
	InterviewType   string `gorm:"size:20;not null"`
	ScheduledDate   time.Time
	DurationMinutes int    `gorm:"not null;check:duration_minutes > 0"`
	Location        string `gorm:"size:255"`
	InterviewerID   string `gorm:"size:36"`
	Status          string `gorm:"size:20;not null"`
	Feedback        *string
	Score           *int `gorm:"check:score IS NULL OR (score >= 1 AND score <= 10)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (interviewModel) TableName() string { return "interviews" }

// AutoMigrate creates or updates the embedded schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&employerProfileModel{},
		&employeeProfileModel{},
		&technologyModel{},
		&vacancyModel{},
		&vacancyTechnologyModel{},
		&applicationModel{},
		&statusHistoryModel{},
		&interviewModel{},
	)
}

func (m *vacancyModel) toDomain() *domain.Vacancy {
	return &domain.Vacancy{
		ID:                 m.ID,
		EmployerID:         m.EmployerID,
		EmployerUserID:     m.Employer.UserID,
		EmployerName:       m.Employer.CompanyName,
		Title:              m.Title,
		Description:        m.Description,
		Modality:           domain.Modality(m.Modality),
		Location:           m.Location,
		SalaryMin:          m.SalaryMin,
		SalaryMax:          m.SalaryMax,
		ExperienceRequired: m.ExperienceRequired,
		PublicationDate:    m.PublicationDate,
		ClosingDate:        m.ClosingDate,
		State:              domain.VacancyState(m.State),
		UpdatedAt:          m.UpdatedAt,
	}
}

func vacancyFromDomain(v *domain.Vacancy) *vacancyModel {
	return &vacancyModel{
		ID:                 v.ID,
		EmployerID:         v.EmployerID,
		Title:              v.Title,
		Description:        v.Description,
		Modality:           string(v.Modality),
		Location:           v.Location,
		SalaryMin:          v.SalaryMin,
		SalaryMax:          v.SalaryMax,
		ExperienceRequired: v.ExperienceRequired,
		PublicationDate:    v.PublicationDate,
		ClosingDate:        v.ClosingDate,
		State:              string(v.State),
		UpdatedAt:          v.UpdatedAt,
	}
}

func (m *applicationModel) toDomain() domain.JobApplication {
	return domain.JobApplication{
		ID:                m.ID,
		EmployeeID:        m.EmployeeID,
		VacancyID:         m.VacancyID,
		Status:            domain.ApplicationStatus(m.Status),
		CoverLetter:       m.CoverLetter,
		Notes:             m.Notes,
		SalaryExpectation: m.SalaryExpectation,
		AvailabilityDate:  m.AvailabilityDate,
		AppliedAt:         m.AppliedAt,
		UpdatedAt:         m.UpdatedAt,
		VacancyEmployerID: m.Vacancy.EmployerID,
		VacancyTitle:      m.Vacancy.Title,
	}
}

func (m *statusHistoryModel) toDomain() domain.ApplicationStatusHistory {
	return domain.ApplicationStatusHistory{
		ID:             m.ID,
		ApplicationID:  m.ApplicationID,
		PreviousStatus: domain.ApplicationStatus(m.PreviousStatus),
		NewStatus:      domain.ApplicationStatus(m.NewStatus),
		ChangedBy:      m.ChangedBy,
		Reason:         m.Reason,
		ChangedAt:      m.ChangedAt,
	}
}

func (m *interviewModel) toDomain() domain.Interview {
	return domain.Interview{
		ID:              m.ID,
		ApplicationID:   m.ApplicationID,
		Type:            domain.InterviewType(m.InterviewType),
		ScheduledAt:     m.ScheduledDate,
		DurationMinutes: m.DurationMinutes,
		Location:        m.Location,
		InterviewerID:   m.InterviewerID,
		Status:          domain.InterviewStatus(m.Status),
		Feedback:        m.Feedback,
		Score:           m.Score,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func interviewFromDomain(iv *domain.Interview) *interviewModel {
	return &interviewModel{
		ID:              iv.ID,
		ApplicationID:   iv.ApplicationID,
		InterviewType:   string(iv.Type),
		ScheduledDate:   iv.ScheduledAt,
		DurationMinutes: iv.DurationMinutes,
		Location:        iv.Location,
		InterviewerID:   iv.InterviewerID,
		Status:          string(iv.Status),
		Feedback:        iv.Feedback,
		Score:           iv.Score,
		CreatedAt:       iv.CreatedAt,
		UpdatedAt:       iv.UpdatedAt,
	}
}
