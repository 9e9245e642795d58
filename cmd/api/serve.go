package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/lumin/internal/ai"
	"github.com/limbo/lumin/internal/api"
	"github.com/limbo/lumin/internal/gamification"
	"github.com/limbo/lumin/internal/repository"
	"github.com/limbo/lumin/internal/scheduler"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/internal/streak"
	"github.com/limbo/lumin/pkg/cache"
	"github.com/limbo/lumin/pkg/config"
	jwtservice "github.com/limbo/lumin/pkg/jwt_service"
)

type ServeCmd struct {
	Address string `help:"Listen address, overrides API_ADDRESS."`
	NoJobs  bool   `help:"Do not run scheduled jobs in this process."`
}

func dbConfig(cfg *config.Config) *repository.PGCfg {
	return &repository.PGCfg{
		Address:  cfg.DB.Address,
		Username: cfg.DB.Username,
		Password: cfg.DB.Password,
		DB:       cfg.DB.Name,
	}
}

func (c *ServeCmd) Run(app *App) error {
	cfg, logger := app.Config, app.Logger
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return errors.New("invalid APP_TIMEZONE: " + err.Error())
	}
	catalog, err := gamification.DefaultCatalog()
	if err != nil {
		return err
	}

	pool := repository.Connect(dbConfig(cfg))
	tx := repository.NewTransactor(pool)
	usersRepo := repository.NewUsersRepoWithConn(pool)
	entriesRepo := repository.NewEntriesRepoWithConn(pool)
	goalsRepo := repository.NewGoalsRepoWithConn(pool)
	streaksRepo := repository.NewStreaksRepoWithConn(pool)
	challengesRepo := repository.NewChallengesRepoWithConn(pool)
	calendar := streak.NewCalendar(streak.SystemClock{}, loc)

	var (
		store    cache.Store
		memStore *cache.MemoryStore
	)
	if cfg.RedisAddress != "" {
		store = cache.NewRedisStore(cfg.RedisAddress, "lumin:")
		logger.Info("dashboard cache in redis", slog.String("address", cfg.RedisAddress))
	} else {
		memStore = cache.NewMemoryStore(nil)
		store = memStore
	}
	dashCache := service.NewDashboardCache(store, cfg.DashboardTTL)

	progressService := service.NewProgressService(tx, usersRepo, catalog)
	challengeService := service.NewChallengeService(service.ChallengeServiceOpts{
		Transactor:     tx,
		UsersRepo:      usersRepo,
		ChallengesRepo: challengesRepo,
		Awarder:        progressService,
		Catalog:        catalog,
		Calendar:       calendar,
		Cache:          dashCache,
		Daily:          cfg.DailyCount,
	})
	entryService := service.NewEntryService(service.EntryServiceOpts{
		Transactor:  tx,
		UsersRepo:   usersRepo,
		EntriesRepo: entriesRepo,
		StreaksRepo: streaksRepo,
		Awarder:     progressService,
		Challenges:  challengeService,
		Calendar:    calendar,
		Cache:       dashCache,
	})
	goalService := service.NewGoalService(service.GoalServiceOpts{
		Transactor: tx,
		UsersRepo:  usersRepo,
		GoalsRepo:  goalsRepo,
		Awarder:    progressService,
		Challenges: challengeService,
		Calendar:   calendar,
		Cache:      dashCache,
	})
	dashboardService := service.NewDashboardService(service.DashboardServiceOpts{
		UsersRepo:   usersRepo,
		EntriesRepo: entriesRepo,
		GoalsRepo:   goalsRepo,
		StreaksRepo: streaksRepo,
		Challenges:  challengeService,
		Catalog:     catalog,
		Calendar:    calendar,
		Cache:       dashCache,
	})

	var gen ai.Generator
	if cfg.AI.APIKey != "" {
		gen = ai.NewGeminiClient(ai.GeminiConfig{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
	} else {
		logger.Warn("AI_API_KEY is not set, ai coach serves fallbacks only")
	}
	coach := ai.NewService(gen, ai.StaticFallbacks{}, cfg.AI.CacheSize, logger)
	coachService := service.NewCoachService(coach, usersRepo, entriesRepo, goalsRepo, calendar)

	limiter := api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	aiLimiter := api.NewRateLimiter(cfg.RateLimit.AIRPS, cfg.RateLimit.AIBurst)
	serv := api.New(&api.ServicesList{
		UserService:      service.NewUserService(usersRepo),
		EntryService:     entryService,
		GoalService:      goalService,
		ChallengeService: challengeService,
		DashboardService: dashboardService,
		CoachService:     coachService,
		JWTService:       jwtservice.New(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL),
		Limiter:          limiter,
		AILimiter:        aiLimiter,
		CORSOrigins:      cfg.AllowedOrigins(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !c.NoJobs {
		var caches []scheduler.Purger
		if memStore != nil {
			caches = append(caches, memStore)
		}
		sched, err := scheduler.New(scheduler.Opts{
			Users:         usersRepo,
			Challenges:    challengeService,
			Limiters:      []scheduler.Sweeper{limiter, aiLimiter},
			Caches:        caches,
			ChallengeSpec: cfg.ChallengeCron,
			Location:      loc,
			Logger:        logger,
		})
		if err != nil {
			return err
		}
		sched.Start(ctx)
		defer sched.Stop()
	}

	address := cfg.API.Address
	if c.Address != "" {
		address = c.Address
	}
	return serv.Run(ctx, address, cfg.API.ShutdownTimeout)
}
