package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/Trinaxus/tubox-server/internal/analytics"
	"github.com/Trinaxus/tubox-server/internal/config"
	"github.com/Trinaxus/tubox-server/internal/content"
	"github.com/Trinaxus/tubox-server/internal/geoip"
	"github.com/Trinaxus/tubox-server/internal/handlers"
	"github.com/Trinaxus/tubox-server/internal/logger"
	mw "github.com/Trinaxus/tubox-server/internal/middleware"
	"github.com/Trinaxus/tubox-server/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	var events store.EventStore
	switch cfg.Store {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o775); err != nil {
			zlog.Fatalw("mkdir", "error", err)
		}
		events, err = store.NewSQLiteEventStore(cfg.DBPath)
	default:
		events, err = store.NewFileEventStore(cfg.DataDir)
	}
	if err != nil {
		zlog.Fatalw("event store", "error", err)
	}
	defer events.Close()

	if err := os.MkdirAll(cfg.DataDir, 0o775); err != nil {
		zlog.Fatalw("mkdir", "error", err)
	}
	presence := store.NewFilePresenceStore(filepath.Join(cfg.DataDir, "active.json"))

	previews := content.NewPreviewWriter(cfg.PreviewWidth)
	galleries, err := content.NewGalleryStore(cfg.MediaDir, previews, zlog)
	if err != nil {
		zlog.Fatalw("gallery store", "error", err)
	}
	posts, err := content.NewPostStore(cfg.BlogDir)
	if err != nil {
		zlog.Fatalw("post store", "error", err)
	}

	// Invalidate listing caches when content changes on disk
	stopWatch := make(chan struct{})
	go func() {
		if err := content.Watch([]content.Invalidator{galleries, posts}, zlog, stopWatch); err != nil {
			zlog.Warnw("content watcher stopped", "error", err)
		}
	}()
	defer close(stopWatch)

	geo := geoip.NewResolver(cfg.GeoIPURL, cfg.GeoIPTimeout())
	agg := &analytics.Aggregator{Events: events, Presence: presence, TTL: cfg.PresenceTTL()}

	collect := &handlers.CollectHandler{Events: events, Geo: geo, Log: zlog}
	heartbeat := &handlers.HeartbeatHandler{Presence: presence, Log: zlog}
	stats := &handlers.StatsHandler{Agg: agg}
	diagnose := &handlers.DiagnoseHandler{Events: events, Presence: presence, TTL: cfg.PresenceTTL()}
	gh := &handlers.GalleryHandler{Store: galleries, Log: zlog}
	ph := &handlers.PostHandler{Store: posts, Log: zlog}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(zlog))
	r.Use(chimw.Recoverer)

	// analytics: public, CORS-enabled
	r.Group(func(r chi.Router) {
		r.Use(mw.CORS(cfg.CORSOrigins))
		r.Post("/collect", collect.ServeHTTP)
		r.Options("/collect", collect.ServeHTTP)
		r.Post("/heartbeat", heartbeat.ServeHTTP)
		r.Options("/heartbeat", heartbeat.ServeHTTP)
		r.Get("/stats", stats.ServeHTTP)
	})
	r.With(mw.RequireToken(cfg.AdminToken)).Get("/diagnose", diagnose.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/galleries", gh.List)
		r.Get("/galleries/{year}/{name}", gh.Get)
		r.Get("/posts", ph.List)
		r.Get("/posts/{year}/{slug}", ph.Get)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireToken(cfg.AdminToken))
			r.Post("/galleries", gh.Create)
			r.Patch("/galleries/{year}/{name}", gh.Update)
			r.Delete("/galleries/{year}/{name}", gh.Delete)
			r.Post("/galleries/{year}/{name}/images", gh.UploadImage)
			r.Delete("/galleries/{year}/{name}/images/{file}", gh.DeleteImage)

			r.Post("/posts", ph.Create)
			r.Patch("/posts/{year}/{slug}", ph.Update)
			r.Delete("/posts/{year}/{slug}", ph.Delete)
		})
	})

	// the SPA loads gallery images straight from the media tree
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zlog.Warnw("shutdown", "error", err)
		}
	}()

	zlog.Infow("listening", "addr", cfg.Listen, "store", cfg.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatalw("server", "error", err)
	}
}
