package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/Priya8975/conflict-monitor/internal/api"
	"github.com/Priya8975/conflict-monitor/internal/catalog"
	"github.com/Priya8975/conflict-monitor/internal/config"
	"github.com/Priya8975/conflict-monitor/internal/dashboard"
	"github.com/Priya8975/conflict-monitor/internal/domain"
	"github.com/Priya8975/conflict-monitor/internal/feed"
	"github.com/Priya8975/conflict-monitor/internal/metrics"
	"github.com/Priya8975/conflict-monitor/internal/notify"
	"github.com/Priya8975/conflict-monitor/internal/scheduler"
	ws "github.com/Priya8975/conflict-monitor/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := clock.RealClock{}

	// Catalog
	initial := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return err
		}
		initial = loaded
		logger.Info("catalog loaded", "path", cfg.CatalogFile,
			"sources", len(loaded.Sources), "hotspots", len(loaded.Hotspots))
	}
	store := catalog.NewStore(initial)

	// Observability
	m := metrics.New()
	hub := ws.NewHub(logger)

	// Alerts: always logged and pushed to browsers, published to Redis when configured
	notifiers := notify.Multi{notify.NewLogNotifier(logger), hub, m}
	var publisher *notify.Breaker
	if cfg.RedisURL != "" {
		redisClient, err := notify.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		logger.Info("connected to Redis", "channel", cfg.AlertChannel)

		limiter := notify.NewRateLimiter(redisClient, time.Second, clk, logger)
		redisNotifier := notify.NewRedisNotifier(redisClient, cfg.AlertChannel, limiter, cfg.AlertRateLimit, logger)
		publisher = notify.NewBreaker("redis", redisNotifier, 5, 30*time.Second, clk, logger)
		notifiers = append(notifiers, publisher)
	}

	dash := dashboard.New(dashboard.Settings{
		SirenEnabled:       cfg.SirenEnabled,
		AutoRefreshEnabled: cfg.AutoRefreshEnabled,
		RefreshInterval:    cfg.RefreshInterval,
		TimelineCapacity:   cfg.TimelineCapacity,
	}, store, notifiers, clk, logger)
	dash.AddObserver(hub)

	// Feed
	buffer, err := feed.NewBuffer(cfg.FeedCapacity)
	if err != nil {
		return err
	}
	buffer.OnEvict(m.Evicted)

	generator := feed.NewGenerator(store, nil, clk)
	manager := feed.NewManager(buffer, generator, notifiers, dash, clk, logger)
	manager.AddRenderer(hub)
	manager.AddRenderer(m)

	if cfg.CatalogFile != "" {
		watcher, err := catalog.NewWatcher(cfg.CatalogFile, store, logger, func(*catalog.Catalog) {
			dash.Record(ctx, "Intelligence catalog reloaded", domain.SeverityLow)
			dash.UpdateThreatLevel(ctx)
		})
		if err != nil {
			return err
		}
		defer watcher.Stop()
	}

	// Background tasks
	feedTask := scheduler.NewTask("feed", cfg.FeedInterval, manager.Generate, clk, logger)
	refreshTask := scheduler.NewTask("refresh", cfg.RefreshInterval, dash.Refresh, clk, logger)
	threatTask := scheduler.NewTask("threat-level", cfg.ThreatInterval, func(ctx context.Context) {
		dash.UpdateThreatLevel(ctx)
	}, clk, logger)
	dash.AttachRefresh(refreshTask)

	router := api.NewRouter(manager, dash, hub, m.Handler(), publisher)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port, "feed_capacity", cfg.FeedCapacity)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		dash.UpdateThreatLevel(gctx)
		if err := manager.Seed(gctx, cfg.FeedInitialItems, cfg.FeedInitialSpacing); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("initial feed loaded", "items", manager.Stats().Total)
		return nil
	})

	for _, t := range []*scheduler.Task{feedTask, refreshTask, threatTask} {
		t.Start(gctx)
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		for _, t := range []*scheduler.Task{feedTask, refreshTask, threatTask} {
			t.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
