package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/auth"
	"github.com/ukydev/travel-agency/internal/catalog"
	"github.com/ukydev/travel-agency/internal/cms"
	"github.com/ukydev/travel-agency/internal/config"
	"github.com/ukydev/travel-agency/internal/db"
	"github.com/ukydev/travel-agency/internal/handlers"
	"github.com/ukydev/travel-agency/internal/middleware"
	"github.com/ukydev/travel-agency/internal/notify"
	"github.com/ukydev/travel-agency/internal/session"
	"github.com/ukydev/travel-agency/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	sessionTTL      = 24 * time.Hour
	sweepInterval   = 10 * time.Minute
	shutdownTimeout = 15 * time.Second
)

func configureLogging(level string) {
	log.SetFormatter(&log.JSONFormatter{})
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown LOG_LEVEL, using info")
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

// newImageStore returns nil when storage credentials are missing; the CMS
// then reports uploads as unavailable.
func newImageStore(cfg *config.StorageConfig) storage.ImageUploader {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil
	}
	store, err := storage.NewS3ImageStore(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create image store")
		return nil
	}
	return store
}

func newPublisher(broker, topic string) (notify.InquiryPublisher, func()) {
	if broker == "" {
		return notify.NopPublisher{}, func() {}
	}
	pub, err := notify.NewMQTTPublisher(broker, topic)
	if err != nil {
		log.WithError(err).WithField("broker", broker).Warn("Inquiry events disabled")
		return notify.NopPublisher{}, func() {}
	}
	log.WithFields(log.Fields{"broker": broker, "topic": topic}).Info("Publishing inquiry events")
	return pub, pub.Close
}

// newServer wires the store, services and handlers into an HTTP server.
func newServer(cfg *config.Config, store *db.Store, images storage.ImageUploader, publisher notify.InquiryPublisher, sessions *session.Store) (*http.Server, *handlers.AuthHandler) {
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	manager := cms.NewManager(store.Packages, store.Cars, images, nil)
	service := catalog.NewService(store.Packages, store.Cars, store.Inquiries, publisher, cfg.WhatsAppNumber)
	authHandler := handlers.NewAuthHandler(authService, store.Users, manager.Drop)

	router := handlers.NewRouter(handlers.RouterDeps{
		Catalog:  handlers.NewCatalogHandler(service, handlers.DefaultAbout(cfg.WhatsAppNumber)),
		Session:  handlers.NewSessionHandler(),
		Auth:     authHandler,
		CMS:      handlers.NewCMSHandler(manager),
		Sessions: sessions,
		AuthMW:   middleware.NewAuthMiddleware(authService),
		RateMW:   middleware.NewRateLimitMiddleware(),
	})

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, authHandler
}

func sweepSessions(ctx context.Context, sessions *session.Store) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				log.WithField("expired", n).Debug("Swept visitor sessions")
			}
		}
	}
}

func main() {
	cfg := config.Load()
	configureLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var database *mongo.Database
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Warn("Record store unavailable")
	}
	if client != nil {
		defer client.Disconnect(context.Background())
		if err == nil {
			log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
		}
		database = client.Database(cfg.MongoDB)
	}
	store := db.NewStore(database)

	publisher, closePublisher := newPublisher(cfg.MQTTBroker, cfg.MQTTTopic)
	defer closePublisher()

	sessions := session.NewStore(sessionTTL, nil)
	go sweepSessions(ctx, sessions)

	server, authHandler := newServer(cfg, store, newImageStore(&cfg.Storage), publisher, sessions)
	if err := authHandler.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.WithError(err).Error("Failed to bootstrap admin account")
	}

	go func() {
		log.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
