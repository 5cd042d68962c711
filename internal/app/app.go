package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/config"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/handler"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/logger"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/middleware"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/notification"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/repository"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/router"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/scheduler"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/service"
)

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}
	app.log = logger.Setup(cfg.Logger.Level, "website")

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initServices() error {
	loc := a.cfg.Location()

	catalog, err := repository.LoadEventCatalog(a.cfg.Site.EventsPath, loc)
	if err != nil {
		return fmt.Errorf("load events catalog: %w", err)
	}
	a.log.Info("events catalog loaded",
		slog.String("path", a.cfg.Site.EventsPath),
		slog.Int("events", len(catalog.All())),
	)

	store := repository.NewReservationStore(a.cfg.Store.Path, a.cfg.Store.CacheTTL, a.log)

	eventService := service.NewEventService(catalog, store, loc)
	reservationService := service.NewReservationService(store, catalog, a.log)

	a.scheduler = scheduler.New(
		catalog,
		store,
		notification.NewLogSender(a.log),
		a.cfg.Reminders.Cron,
		a.cfg.Reminders.Window,
		loc,
		a.log,
	)

	h := handler.NewHandler(eventService, reservationService, service.Locale(a.cfg.Site.DefaultLocale))

	admin := router.AdminAccounts{}
	if a.cfg.Admin.Username != "" && a.cfg.Admin.Password != "" {
		admin[a.cfg.Admin.Username] = a.cfg.Admin.Password
	}

	rsvpLimit := middleware.NewRateLimiter(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst).Middleware()

	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		admin,
		rsvpLimit,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.scheduler.Start(ctx); err != nil {
			a.log.Error("scheduler failed", slog.String("error", err.Error()))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, slog.LevelInfo, "HTTP server starting",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("HTTP server stopped")

	a.log.Info("app stopped")
	return nil
}
