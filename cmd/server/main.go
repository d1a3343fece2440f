package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	apiinternal "github.com/Omardiab22/VELIN-START/internal/api"
	"github.com/Omardiab22/VELIN-START/internal/common"
	"github.com/Omardiab22/VELIN-START/internal/config"
	"github.com/Omardiab22/VELIN-START/internal/http/health"
	"github.com/Omardiab22/VELIN-START/internal/http/v1/routes"
	"github.com/Omardiab22/VELIN-START/internal/http/v1/webhook"
	appmiddleware "github.com/Omardiab22/VELIN-START/internal/middleware"
	"github.com/Omardiab22/VELIN-START/internal/respond"
	eligibilitysvc "github.com/Omardiab22/VELIN-START/internal/service/eligibility"
	profilesvc "github.com/Omardiab22/VELIN-START/internal/service/profile"
	wuiltsvc "github.com/Omardiab22/VELIN-START/internal/service/wuilt"
	"github.com/Omardiab22/VELIN-START/internal/telemetry"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const upstreamTimeout = 10 * time.Second

func main() {
	defer func() {
		if err := common.Sync(); err != nil {
			appmiddleware.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := common.Err(); err != nil {
		appmiddleware.LogError(context.Background(), "logger init error", err)
	}

	// Local development convenience; the file is absent in deployment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		appmiddleware.LogFatal(context.Background(), "configuration error", err)
	}

	ctx := context.Background()
	store, closeStore, err := newProfileStore(ctx, cfg.Store)
	if err != nil {
		appmiddleware.LogFatal(ctx, "profile store init error", err,
			zap.String("backend", cfg.Store.Backend))
	}
	defer func() {
		if err := closeStore(); err != nil {
			appmiddleware.LogError(context.Background(), "profile store close error", err)
		}
	}()

	httpClient := &http.Client{
		Timeout:   upstreamTimeout,
		Transport: telemetry.NewTransport(http.DefaultTransport),
	}
	orders := wuiltsvc.NewClient(httpClient, cfg.Wuilt.StoreID,
		wuiltsvc.WithToken(cfg.Wuilt.APIKey),
		wuiltsvc.WithEndpoint(cfg.Wuilt.Endpoint),
		wuiltsvc.WithPageSize(cfg.Wuilt.OrderPageSize),
	)
	matcher := eligibilitysvc.NewMatcher(cfg.Keywords)

	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		appmiddleware.RequestLogger(),
		appmiddleware.AccessLogger(),
		telemetry.Middleware(),
		respond.Recoverer(),
	)

	api := humachi.New(router, apiinternal.NewConfig("Velin Purchase API", Version))
	routes.Register(api, orders, matcher, store)

	router.Get("/healthz", health.Handler(Version))
	router.Method(http.MethodGet, "/metrics", telemetry.Handler())
	router.Post("/webhooks/wuilt", webhook.Handler(store))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		appmiddleware.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Backend),
			zap.Strings("keywords", matcher.Keywords()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		appmiddleware.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		appmiddleware.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appmiddleware.LogError(shutdownCtx, "server shutdown error", err)
	}
	appmiddleware.LogInfo(context.Background(), "server exited")
}

// newProfileStore builds the configured backend and a close func releasing
// its resources.
func newProfileStore(ctx context.Context, cfg config.StoreConfig) (profilesvc.Service, func() error, error) {
	switch cfg.Backend {
	case "firestore":
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
		if err != nil {
			return nil, nil, err
		}
		return profilesvc.NewFirestoreStore(client), client.Close, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		return profilesvc.NewRedisStore(rdb), rdb.Close, nil
	default:
		return profilesvc.NewMemoryStore(), func() error { return nil }, nil
	}
}
