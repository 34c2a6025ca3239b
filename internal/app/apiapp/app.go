package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jobast/bokkal/internal/config"
	"github.com/jobast/bokkal/internal/infra/httpclient"
	"github.com/jobast/bokkal/internal/jobs/cleanup"
	pgrepo "github.com/jobast/bokkal/internal/repo/postgres"
	redrepo "github.com/jobast/bokkal/internal/repo/redis"
	authsvc "github.com/jobast/bokkal/internal/services/auth"
	eventssvc "github.com/jobast/bokkal/internal/services/events"
	locationsvc "github.com/jobast/bokkal/internal/services/location"
	modsvc "github.com/jobast/bokkal/internal/services/moderation"
	ratesvc "github.com/jobast/bokkal/internal/services/rate"
	userssvc "github.com/jobast/bokkal/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	cleanupJob *cleanup.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	geocacheRepo := redrepo.NewGeocacheRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	eventRepo := pgrepo.NewEventRepo(pool)
	userRepo := pgrepo.NewUserRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)

	photonClient := locationsvc.NewPhotonClient(
		httpclient.New(cfg.Geocoder.Timeout),
		locationsvc.PhotonConfig{
			BaseURL:   cfg.Geocoder.BaseURL,
			Lang:      cfg.Geocoder.Lang,
			BBox:      cfg.Geocoder.BBox,
			CenterLat: cfg.Geocoder.CenterLat,
			CenterLon: cfg.Geocoder.CenterLon,
			Limit:     cfg.Geocoder.Limit,
			CacheTTL:  cfg.Geocoder.CacheTTL,
		},
	)
	photonClient.AttachCache(geocacheRepo)

	locationService := locationsvc.NewService(photonClient, log)
	moderationService := modsvc.NewService(eventRepo, userRepo, log)
	eventsService := eventssvc.NewService(eventRepo, userRepo, log)
	usersService := userssvc.NewService(userRepo, log)
	suggestLimiter := ratesvc.NewLimiter(rateRepo, cfg.Rate.SuggestPerMinute)
	cleanupJob := cleanup.New(eventRepo, cfg.Moderation.RejectedRetention, log)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		JWTManager:        jwtManager,
		LocationService:   locationService,
		ModerationService: moderationService,
		EventsService:     eventsService,
		UsersService:      usersService,
		SuggestLimiter:    suggestLimiter,
		Logger:            log,
		Config:            cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		cleanupJob: cleanupJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.cleanupJob.Start(ctx, a.cfg.Moderation.CleanupInterval)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
