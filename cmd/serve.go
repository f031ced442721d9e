package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/events"
	"github.com/tesseract-hub/property-service/internal/handlers"
	"github.com/tesseract-hub/property-service/internal/middleware"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/repository"
	"github.com/tesseract-hub/property-service/internal/scheduler"
	ws "github.com/tesseract-hub/property-service/internal/websocket"
)

func serveCmd(deps func() (*config.Config, *logrus.Logger)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := deps()
			return runServer(cfg, logger)
		},
	}
}

func runServer(cfg *config.Config, logger *logrus.Logger) error {
	logger.Info("Starting Property Service...")

	a, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	// Websocket hub for live notifications
	hub := ws.NewHub(logger)
	go hub.Run()
	defer hub.Shutdown()

	healthHandler := handlers.NewHealthHandler(a.kv)

	// Initialize NATS events publisher (non-blocking)
	publisher := events.NewPublisher(nil, logger)
	a.repo.Subscribe(publisher.Listener())
	if cfg.NATS.URL != "" {
		go func() {
			client, err := events.NewClient(cfg.NATS.URL, cfg.NATS.ReconnectWait, logger)
			if err != nil {
				logger.WithError(err).Warn("Failed to initialize events publisher (events won't be published)")
				return
			}
			publisher.SetClient(client)
			healthHandler.SetNATSClient(client)
			a.onClose(client.Close)
			logger.Info("NATS events publisher initialized")
		}()
	}

	// Every mutation re-derives notifications for connected dashboards
	a.repo.Subscribe(func(repository.ChangeEvent) {
		if hub.ClientCount() > 0 {
			hub.Broadcast(ws.MessageTypeNotifications, a.analytics.GetNotifications())
		}
	})
	broadcastSync := func(result *models.SyncResult) {
		hub.Broadcast(ws.MessageTypeSyncCompleted, result)
	}

	syncScheduler := scheduler.NewSyncScheduler(a.sync, cfg.Scheduler, logger)
	syncScheduler.OnResult(broadcastSync)
	if err := syncScheduler.Start(); err != nil {
		return err
	}
	defer syncScheduler.Stop()

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	handlers.RegisterRoutes(router, &handlers.Handlers{
		Health:       healthHandler,
		Entities:     handlers.NewEntitySet(a.repo, a.documents.DeleteDocument, logger),
		Analytics:    handlers.NewAnalyticsHandlers(a.analytics, logger),
		Applications: handlers.NewApplicationHandlers(a.apps, logger),
		Sync:         handlers.NewSyncHandlers(a.sync, broadcastSync, logger),
		Documents:    handlers.NewDocumentHandlers(a.documents, logger),
		WebSocket:    handlers.NewWebSocketHandler(hub, a.analytics, cfg.WebSocket, cfg.Server.AllowedOrigins, logger),
	})

	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("address", server.Addr).Info("Property Service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("Server forced to shutdown")
	}

	logger.Info("Server exited")
	return nil
}
