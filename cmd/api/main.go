package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-board-backend/config"
	_ "job-board-backend/docs" // Important for Swagger
	"job-board-backend/internal/delivery/http/middleware"
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/repository/postgres"
	"job-board-backend/internal/repository/sqlite"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/database"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// stores is the storage backend selected by DB_DRIVER.
type stores struct {
	tx           domain.Transactor
	vacancies    domain.VacancyRepository
	technologies domain.TechnologyRepository
	applications domain.ApplicationRepository
	history      domain.StatusHistoryRepository
	interviews   domain.InterviewRepository
	principals   domain.PrincipalRepository
	ping         usecase.PingFunc
	close        func()
}

func openPostgres(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.DBAutoMigrate {
		if err := database.MigrateUp(cfg.DBUrl); err != nil {
			return nil, err
		}
	}

	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	return &stores{
		tx:           postgres.NewTransactor(pool),
		vacancies:    postgres.NewVacancyRepository(pool),
		technologies: postgres.NewTechnologyRepository(pool),
		applications: postgres.NewApplicationRepository(pool),
		history:      postgres.NewStatusHistoryRepository(pool),
		interviews:   postgres.NewInterviewRepository(pool),
		principals:   postgres.NewPrincipalRepository(pool),
		ping:         pool.Ping,
		close:        pool.Close,
	}, nil
}

func openSQLite(cfg *config.Config) (*stores, error) {
	db, err := database.NewSQLiteConnection(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := sqlite.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return &stores{
		tx:           sqlite.NewTransactor(db),
		vacancies:    sqlite.NewVacancyRepository(db),
		technologies: sqlite.NewTechnologyRepository(db),
		applications: sqlite.NewApplicationRepository(db),
		history:      sqlite.NewStatusHistoryRepository(db),
		interviews:   sqlite.NewInterviewRepository(db),
		principals:   sqlite.NewPrincipalRepository(db),
		ping:         sqlDB.PingContext,
		close:        func() { _ = sqlDB.Close() },
	}, nil
}

// @title           Job Board API
// @version         1.0
// @description     Vacancies, applications and interviews.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "db_driver", cfg.DBDriver)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database
	var st *stores
	switch cfg.DBDriver {
	case config.DriverSQLite:
		st, err = openSQLite(cfg)
	default:
		st, err = openPostgres(ctx, cfg)
	}
	if err != nil {
		logger.Log.Error("Failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer st.close()

	// 4. Optional Redis for shared rate limit counters
	health := map[string]usecase.Pinger{"database": st.ping}
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured, rate limiting is per instance")
	case err != nil:
		logger.Log.Warn("Redis unavailable, rate limiting is per instance", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
		health["redis"] = usecase.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}

	rateLimiter := middleware.NewRateLimiter(redisClient)
	rateLimiter.StartSweeper(ctx, 5*time.Minute)

	// 5. Setup UseCases
	validate := validation.New()
	identityUC := usecase.NewIdentityUsecase(st.principals)
	vacancyUC := usecase.NewVacancyUsecase(st.tx, st.vacancies, st.technologies, validate)
	applicationUC := usecase.NewApplicationUsecase(st.tx, st.applications, st.history, st.vacancies, validate)
	interviewUC := usecase.NewInterviewUsecase(st.tx, st.applications, st.interviews, validate)
	healthUC := usecase.NewHealthUsecase(health)

	// 6. Setup Auth (HS256 secret and/or Supabase JWKS)
	var jwksProvider *auth.Provider
	if cfg.SupabaseUrl != "" {
		jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
		jwksProvider = auth.NewProvider(jwksURL, &http.Client{Timeout: 5 * time.Second})
	}
	verifier := auth.NewVerifier(cfg.SupabaseJWTSecret, jwksProvider)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		IdentityUC:    identityUC,
		VacancyUC:     vacancyUC,
		ApplicationUC: applicationUC,
		InterviewUC:   interviewUC,
		Health:        healthUC,
		Verifier:      verifier,
		RateLimiter:   rateLimiter,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
