package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabpaderog/maxicoffee-admin/internal/config"
	"github.com/gabpaderog/maxicoffee-admin/internal/datasource"
	"github.com/gabpaderog/maxicoffee-admin/internal/handlers"
	"github.com/gabpaderog/maxicoffee-admin/internal/mirror"
	"github.com/gabpaderog/maxicoffee-admin/internal/remote"
	"github.com/gabpaderog/maxicoffee-admin/internal/workflow"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// 2. Open the local mirror
	store, err := mirror.NewSQLiteStore(cfg.MirrorPath)
	if err != nil {
		slog.Error("Failed to open mirror store", "path", cfg.MirrorPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 3. Upstream client and data sources
	rc := remote.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, cfg.HTTPTimeout)

	orders := datasource.Orders(rc, store)
	deps := &handlers.Deps{
		Products:    datasource.Products(rc, store),
		Categories:  datasource.Categories(rc, store),
		Addons:      datasource.Addons(rc, store),
		Discounts:   datasource.Discounts(rc, store),
		Orders:      orders,
		Fulfillment: workflow.New(rc, orders),
		Remote:      rc,
	}

	router := handlers.SetupRouter(deps)

	// 4. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "upstream", cfg.UpstreamURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
