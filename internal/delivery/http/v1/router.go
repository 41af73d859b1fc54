package v1

import (
	"context"
	"net/http"
	"time"

	"job-board-backend/config"
	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// HealthChecker reports per-dependency status; ok is false when any dependency is down.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type RouterDeps struct {
	IdentityUC    domain.IdentityUsecase
	VacancyUC     domain.VacancyUsecase
	ApplicationUC domain.ApplicationUsecase
	InterviewUC   domain.InterviewUsecase
	Health        HealthChecker
	Verifier      middleware.TokenVerifier
	RateLimiter   *middleware.RateLimiter
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.GinMode == gin.ReleaseMode))
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	r.Use(middleware.ErrorHandler())

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	global := middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)
	writes := limiter.Middleware(middleware.WriteRateLimitConfig(global))

	v1 := r.Group("/v1")
	v1.Use(limiter.Middleware(global))

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		status, ok := deps.Health.Check(ctx)
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.IdentityUC))
	{
		NewAuthHandler(protected)
		NewVacancyHandler(v1, protected, deps.VacancyUC, deps.ApplicationUC, writes)
		NewApplicationHandler(protected, deps.ApplicationUC, writes)
		NewInterviewHandler(protected, deps.InterviewUC, writes)
	}

	return r
}
