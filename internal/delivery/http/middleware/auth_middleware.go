package middleware

import (
	"errors"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware resolves the bearer token into a Principal. The role and profiles come
// from storage; token role claims are never trusted.
func AuthMiddleware(verifier TokenVerifier, identity domain.IdentityUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortWith(c, apperror.Unauthorized("Bearer token required"))
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			logger.Log.Debug("token rejected", "error", err, "path", c.Request.URL.Path)
			abortWith(c, apperror.Unauthorized("Invalid token"))
			return
		}

		principal, err := identity.ResolvePrincipal(c.Request.Context(), claims.Subject, claims.Email)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(string(domain.KeyUserID), principal.UserID)
		c.Set(string(domain.KeyPrincipal), principal)
		c.Next()
	}
}

// RequireRole rejects principals whose stored role is not one of roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := CurrentPrincipal(c)
		if err != nil {
			abortWith(c, err)
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		abortWith(c, apperror.Forbidden("Insufficient role"))
	}
}

// CurrentPrincipal returns the Principal stored by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (*domain.Principal, error) {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return nil, apperror.Unauthorized("Authentication required")
	}
	p, ok := v.(*domain.Principal)
	if !ok || p == nil {
		return nil, apperror.Internal(errors.New("principal has unexpected type"))
	}
	return p, nil
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
