package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type identityUsecase struct {
	principalRepo domain.PrincipalRepository
}

func NewIdentityUsecase(principalRepo domain.PrincipalRepository) domain.IdentityUsecase {
	return &identityUsecase{principalRepo: principalRepo}
}

// ResolvePrincipal turns a verified token subject into the actor of an operation. The
// role is always read from the local users table, never taken from the token.
func (u *identityUsecase) ResolvePrincipal(ctx context.Context, userID, email string) (*domain.Principal, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Authentication required")
	}

	p, err := u.principalRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal(err)
	}
	if !p.Role.IsValid() {
		return nil, apperror.Forbidden("User has no valid role")
	}
	if p.Email == "" {
		p.Email = email
	}
	return p, nil
}
