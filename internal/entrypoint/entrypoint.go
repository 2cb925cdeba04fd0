package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/audit"
	"github.com/mrlokans/booklending/internal/config"
	"github.com/mrlokans/booklending/internal/database"
	auditrepo "github.com/mrlokans/booklending/internal/database/audit"
	"github.com/mrlokans/booklending/internal/database/notifications"
	http_controllers "github.com/mrlokans/booklending/internal/http"
	"github.com/mrlokans/booklending/internal/lending"
	"github.com/mrlokans/booklending/internal/logging"
	"github.com/mrlokans/booklending/internal/metrics"
	"github.com/mrlokans/booklending/internal/notify"
	"github.com/mrlokans/booklending/internal/scheduler"
	"github.com/mrlokans/booklending/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()), zap.Duration("timeout", timeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so nothing writes after the server is gone
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

// Components are the long-lived services built from the configuration.
type Components struct {
	Logger        *zap.Logger
	Database      *database.Database
	Store         *database.Store
	Engine        *lending.Engine
	Notifications *notifications.Repository
	Audit         *audit.Service
	Metrics       *metrics.Metrics
	Tasks         *tasks.Client
	Scheduler     *scheduler.Scheduler
}

// Build wires the lending engine and its collaborators. The caller owns
// the returned components and must call Close.
func Build(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	db, err := database.NewDatabase(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Components{
		Logger:        logger,
		Database:      db,
		Store:         database.NewStore(db.DB, cfg.Borrowing.DefaultBorrowLimit),
		Notifications: notifications.NewRepository(db.DB),
	}

	// Inbox always; audit history when enabled
	delivery := notify.Fanout{notify.NewInbox(c.Notifications)}
	if cfg.Audit.Enabled {
		c.Audit = audit.NewService(auditrepo.NewRepository(db.DB), logger.Named("audit"))
		delivery = append(delivery, c.Audit)
	}

	taskCfg := tasks.Config{
		Workers:           cfg.Tasks.Workers,
		MaxRetries:        cfg.Tasks.MaxRetries,
		RetryDelay:        cfg.Tasks.RetryDelay,
		TaskTimeout:       cfg.Tasks.TaskTimeout,
		ReleaseAfter:      cfg.Tasks.ReleaseAfter,
		CleanupInterval:   cfg.Tasks.CleanupInterval,
		RetentionDuration: cfg.Tasks.RetentionDuration,
	}

	// With the task queue, events are delivered by workers and retried on failure
	var (
		notifier lending.Notifier = delivery
		queue    tasks.Enqueuer
	)
	if cfg.Tasks.Enabled {
		c.Tasks, err = tasks.NewClient(cfg.Database.Path, taskCfg, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		queue = c.Tasks
		notifier = tasks.NewQueueNotifier(c.Tasks)
	}

	// Counted at commit time, ahead of queued delivery
	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New()
		notifier = notify.Fanout{c.Metrics, notifier}
	}

	c.Engine = lending.NewEngine(c.Store, lending.Settings{
		LoanPeriod:       cfg.Borrowing.LoanPeriod(),
		FinePerDay:       cfg.Borrowing.FinePerDay,
		DefaultPageLimit: cfg.Pagination.DefaultLimit,
		MaxPageLimit:     cfg.Pagination.MaxLimit,
	}, lending.WithNotifier(notifier), lending.WithLogger(logger.Named("lending")))

	if c.Tasks != nil {
		c.Tasks.Register(
			tasks.NewDeliverNotificationQueue(delivery, taskCfg),
			tasks.NewOverdueRemindersQueue(c.Engine),
			tasks.NewCleanupNotificationsQueue(c.Notifications, logger.Named("tasks")),
		)
	}

	var jobs []scheduler.Job
	if cfg.Scheduler.OverdueRemindersEnabled {
		jobs = append(jobs, scheduler.OverdueRemindersJob(cfg.Scheduler.OverdueRemindersSchedule, c.Engine, queue))
	}
	if cfg.Scheduler.NotificationCleanupEnabled {
		jobs = append(jobs, scheduler.NotificationCleanupJob(cfg.Scheduler.NotificationCleanupSchedule,
			cfg.Scheduler.NotificationRetentionDays, c.Notifications, queue))
	}
	if len(jobs) > 0 {
		c.Scheduler = scheduler.New(logger.Named("scheduler"), jobs...)
	}

	return c, nil
}

// Close releases the task queue and the database.
func (c *Components) Close() {
	if c.Tasks != nil {
		if err := c.Tasks.Close(); err != nil {
			c.Logger.Error("error closing task client", zap.Error(err))
		}
	}
	if err := c.Database.Close(); err != nil {
		c.Logger.Error("error closing database", zap.Error(err))
	}
}

// Run builds every component, starts background workers and serves HTTP until shutdown.
func Run(cfg *config.Config, version string) error {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting booklending", zap.String("version", version))

	c, err := Build(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	if c.Tasks != nil {
		go c.Tasks.Start(bgCtx)
	}
	if c.Scheduler != nil {
		if err := c.Scheduler.Start(bgCtx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Borrowings:    c.Engine,
		Books:         c.Store.Inventory(),
		Users:         c.Store.UserRepository(),
		Database:      c.Database,
		Notifications: c.Notifications,
		Pagination:    cfg.Pagination,
		ReadOnly:      cfg.Global.ReadOnly,
		Metrics:       c.Metrics,
		Logger:        logger.Named("http"),
		Version:       version,
	}
	if c.Audit != nil {
		routerCfg.History = c.Audit
	}
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if c.Scheduler != nil {
			c.Scheduler.Stop()
		}
		if c.Tasks != nil {
			c.Tasks.Stop(ctx)
		}
		cancelBackground()
	}

	return Serve(router, cfg, logger, onShutdown)
}
