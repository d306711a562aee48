// Package main is the entry point for the PackVision API server.
// It only wires dependencies together and runs the server.
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

	"github.com/pkordes/packvision/internal/app"
	"github.com/pkordes/packvision/internal/config"
	"github.com/pkordes/packvision/internal/handler"
	"github.com/pkordes/packvision/internal/service"
	"github.com/pkordes/packvision/openapi"
)

func main() {
	// A missing .env is normal outside local development.
	if err := app.LoadDotenv(".env", false); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(&cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	st, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	aiClient, err := app.NewAIClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	wx := app.NewWeather(cfg, logger)

	timeline := service.NewTimelineService(st, nil)
	svc := handler.Services{
		Trips:         service.NewTripService(st, wx, logger),
		PackLists:     service.NewPackListService(st, aiClient, nil, logger),
		Scanner:       service.NewScanService(st, aiClient, logger),
		Vaccinations:  service.NewVaccinationService(aiClient, logger),
		PersonalItems: service.NewPersonalItemService(st),
		SavedTrips:    service.NewSavedTripService(st, nil),
		Timeline:      timeline,
		Travelers:     service.NewTravelerService(st),
		Dashboard:     service.NewDashboardService(st, timeline, nil),
	}

	routes := handler.NewServer(svc, openapi.Document, logger).Routes(handler.RouterOptions{
		CORSOrigins:         cfg.CORSOrigins,
		AIRequestsPerMinute: cfg.AIRequestsPerMinute,
	})

	// WriteTimeout leaves room for the scan timeout plus AI retries.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      handler.ScanTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-stop:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
