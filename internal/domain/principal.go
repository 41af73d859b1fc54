package domain

import "context"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployer Role = "employer"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleEmployee:
		return true
	default:
		return false
	}
}

// EmployerCapability is present when the identity owns an employer profile.
type EmployerCapability struct {
	ProfileID   int64  `json:"profile_id"`
	CompanyName string `json:"company_name"`
}

// EmployeeCapability is present when the identity owns an employee profile.
type EmployeeCapability struct {
	ProfileID int64 `json:"profile_id"`
}

// Principal is the authenticated actor of an operation.
type Principal struct {
	UserID   string              `json:"user_id"`
	Email    string              `json:"email"`
	Role     Role                `json:"role"`
	Employer *EmployerCapability `json:"employer,omitempty"`
	Employee *EmployeeCapability `json:"employee,omitempty"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func (p *Principal) EmployerProfileID() (int64, bool) {
	if p == nil || p.Employer == nil {
		return 0, false
	}
	return p.Employer.ProfileID, true
}

func (p *Principal) EmployeeProfileID() (int64, bool) {
	if p == nil || p.Employee == nil {
		return 0, false
	}
	return p.Employee.ProfileID, true
}

// PrincipalRepository reads identities and their profiles. Users and profiles are owned
// by the identity side; this service never writes them.
type PrincipalRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Principal, error)
}

type IdentityUsecase interface {
	ResolvePrincipal(ctx context.Context, userID, email string) (*Principal, error)
}
