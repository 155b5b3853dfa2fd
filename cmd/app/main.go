package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/geotreasure/internal/auth"
	"github.com/osse101/geotreasure/internal/bootstrap"
	"github.com/osse101/geotreasure/internal/claim"
	"github.com/osse101/geotreasure/internal/config"
	"github.com/osse101/geotreasure/internal/eventlog"
	"github.com/osse101/geotreasure/internal/item"
	"github.com/osse101/geotreasure/internal/profile"
	"github.com/osse101/geotreasure/internal/registry"
	"github.com/osse101/geotreasure/internal/reward"
	"github.com/osse101/geotreasure/internal/server"
	"github.com/osse101/geotreasure/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("geotreasure exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()

	// Storage, then the in-memory state rebuilt from it
	repos, err := bootstrap.InitializeRepositories(ctx, cfg, clock)
	if err != nil {
		return err
	}

	reg := registry.New(cfg.AdminID, clock)
	store := profile.NewStore(clock)
	if err := repos.RestoreState(ctx, reg, store); err != nil {
		repos.Close()
		return err
	}

	board, redisClient, err := bootstrap.InitializeLeaderboard(ctx, cfg, store)
	if err != nil {
		repos.Close()
		return err
	}

	// Events
	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Close()
		return err
	}

	rewardService := reward.NewService(repos.Reward, reward.CacheConfig{
		Size: cfg.RewardCacheSize,
		TTL:  cfg.RewardCacheTTL,
	})
	eventLogService := eventlog.NewService(repos.EventLog)

	forwarder, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventLogService,
		RewardService:   rewardService,
		Config:          cfg,
	})
	if err != nil {
		repos.Close()
		return err
	}

	// Background work
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	persister := worker.NewClaimPersister(pool, rewardService)

	cleanup := worker.NewPeriodicWorker(bootstrap.WorkerNameEventCleanup, pool, clock, bootstrap.EventCleanupInterval,
		func() worker.Job { return eventlog.NewCleanupJob(eventLogService, cfg.EventRetentionDays) })
	cleanup.Start()

	// Services
	itemService := item.NewService(reg, repos.Item)
	if _, err := bootstrap.SeedCatalogue(ctx, cfg.SeedPath, itemService, cfg.AdminID); err != nil {
		slog.Error("Catalogue seeding failed", "error", err)
	}

	profileService := profile.NewService(store, repos.Profile, publisher, board)
	claimService := claim.NewService(claim.NewCoordinator(reg, store), clock, publisher, persister, board)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, auth.DefaultTokenTTL, clock)
	if err != nil {
		repos.Close()
		return err
	}

	readiness := repos.ReadinessChecks()
	if redisClient != nil {
		readiness = append(readiness, bootstrap.RedisReadiness(redisClient))
	}

	srv := server.NewServer(cfg.Port, server.Deps{
		Tokens:         tokens,
		AdminID:        cfg.AdminID,
		Version:        cfg.Version,
		TrustedProxies: cfg.TrustedProxies,
		Profiles:       profileService,
		Items:          itemService,
		Claims:         claimService,
		Rewards:        rewardService,
		Leaderboard:    board,
		Events:         eventLogService,
		Readiness:      readiness,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "treasures", reg.Len(), "profiles", store.Len())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownDeadline)
		defer cancel()

		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:             srv,
			PeriodicWorkers:    []*worker.PeriodicWorker{cleanup},
			WorkerPool:         pool,
			ResilientPublisher: publisher,
			Forwarder:          forwarder,
			Redis:              redisClient,
			Repositories:       repos,
		})
		return nil
	})

	return g.Wait()
}
