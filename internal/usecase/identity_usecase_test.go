package usecase_test

import (
	"context"
	"errors"
	"testing"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolvePrincipal(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an empty subject", func(t *testing.T) {
		uc := usecase.NewIdentityUsecase(new(MockPrincipalRepo))
		_, err := uc.ResolvePrincipal(ctx, "", "")
		assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	})

	t.Run("Should reject unknown users", func(t *testing.T) {
		repo := new(MockPrincipalRepo)
		repo.On("GetByUserID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, err := usecase.NewIdentityUsecase(repo).ResolvePrincipal(ctx, "ghost", "ghost@example.com")
		assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	})

	t.Run("Should hide storage failures", func(t *testing.T) {
		repo := new(MockPrincipalRepo)
		repo.On("GetByUserID", mock.Anything, "u1").Return(nil, errors.New("connection reset"))

		_, err := usecase.NewIdentityUsecase(repo).ResolvePrincipal(ctx, "u1", "")
		assert.True(t, apperror.IsKind(err, apperror.KindInternal))
	})

	t.Run("Should take the role from storage", func(t *testing.T) {
		repo := new(MockPrincipalRepo)
		repo.On("GetByUserID", mock.Anything, "u1").Return(employer(), nil)

		p, err := usecase.NewIdentityUsecase(repo).ResolvePrincipal(ctx, "u1", "boss@example.com")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployer, p.Role)
		assert.Equal(t, "boss@example.com", p.Email)
		id, ok := p.EmployerProfileID()
		assert.True(t, ok)
		assert.Equal(t, int64(10), id)
	})
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": usecase.PingFunc(func(context.Context) error { return nil }),
		"redis":    usecase.PingFunc(func(context.Context) error { return errors.New("down") }),
	})

	status, healthy := uc.Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "ok", status["database"])
	assert.Equal(t, "error", status["redis"])
}
