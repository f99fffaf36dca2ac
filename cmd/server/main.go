package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/seekers/backend/internal/config"
	"github.com/seekers/backend/internal/handler"
	"github.com/seekers/backend/internal/logging"
	"github.com/seekers/backend/internal/metrics"
	"github.com/seekers/backend/internal/repository"
	"github.com/seekers/backend/internal/service"
	"github.com/seekers/backend/internal/storage"
	"github.com/seekers/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logging.Fatal("failed to open store", "error", err)
	}
	defer store.Close()

	files, err := newStorage(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to init storage", "backend", cfg.StorageBackend, "error", err)
	}

	secret := auth.SecretBytes(cfg.JWTSecret)

	mediaService := service.NewMediaService(store.Media, files)
	uploadService := service.NewUploadService(files)
	backgroundService := service.NewBackgroundService(store.Backgrounds)
	packageService := service.NewPackageService(store.Packages)
	inquiryService := service.NewInquiryService(store.Inquiries)
	statsService := service.NewStatsService(store.Packages, store.Media, store.Inquiries)
	authService := service.NewAuthService(cfg.AdminEmail, cfg.AdminPassword, secret, cfg.TokenTTL)
	seedService := service.NewSeedService(store, cfg.ClearDBOnSeed)

	h := handler.New(store, cfg.FrontendURL)
	mediaHandler := handler.NewMediaHandler(mediaService)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.MaxUploadRequestBytes)
	backgroundHandler := handler.NewBackgroundHandler(backgroundService)
	packageHandler := handler.NewPackageHandler(packageService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService)
	statsHandler := handler.NewStatsHandler(statsService)
	authHandler := handler.NewAuthHandler(authService)
	seedHandler := handler.NewSeedHandler(seedService, cfg.SeedSecret, cfg.AutoSeedDatabase)
	contactLimiter := handler.NewRateLimiter(ctx, cfg.ContactRateLimit)

	// 管理系エンドポイント
	wrapAdmin := func(fn http.HandlerFunc) http.Handler {
		if cfg.AuthRequired {
			return auth.RequireAdmin(secret)(fn)
		}
		return auth.DevAuth(fn)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Media
	mux.HandleFunc("GET /api/media", mediaHandler.List)
	mux.HandleFunc("GET /api/media/{id}", mediaHandler.Get)
	mux.Handle("POST /api/media", wrapAdmin(mediaHandler.Create))
	mux.Handle("PUT /api/media/{id}", wrapAdmin(mediaHandler.Update))
	mux.Handle("DELETE /api/media/{id}", wrapAdmin(mediaHandler.Delete))
	mux.Handle("POST /api/media/bulk", wrapAdmin(mediaHandler.BulkCategorize))
	mux.Handle("DELETE /api/media/bulk", wrapAdmin(mediaHandler.BulkDelete))

	// Upload
	mux.HandleFunc("GET /api/upload", uploadHandler.Info)
	mux.Handle("POST /api/upload", wrapAdmin(uploadHandler.Upload))

	// Backgrounds
	mux.HandleFunc("GET /api/backgrounds", backgroundHandler.List)
	mux.HandleFunc("GET /api/backgrounds/section/{section}", backgroundHandler.Resolve)
	mux.Handle("POST /api/backgrounds", wrapAdmin(backgroundHandler.Upsert))
	mux.Handle("PUT /api/backgrounds", wrapAdmin(backgroundHandler.Update))
	mux.Handle("DELETE /api/backgrounds", wrapAdmin(backgroundHandler.Delete))

	// Packages（一覧・詳細は認証不要）
	mux.HandleFunc("GET /api/packages", packageHandler.List)
	mux.HandleFunc("GET /api/packages/{id}", packageHandler.Get)
	mux.Handle("POST /api/packages", wrapAdmin(packageHandler.Create))
	mux.Handle("PUT /api/packages/{id}", wrapAdmin(packageHandler.Update))
	mux.Handle("DELETE /api/packages/{id}", wrapAdmin(packageHandler.Delete))
	mux.Handle("GET /api/admin/packages", wrapAdmin(packageHandler.AdminList))

	// Inquiries: 送信のみ公開、レート制限付き
	mux.Handle("POST /api/contact", contactLimiter.Middleware(http.HandlerFunc(inquiryHandler.Submit)))
	mux.Handle("GET /api/contact", wrapAdmin(inquiryHandler.List))
	mux.Handle("GET /api/contact/{id}", wrapAdmin(inquiryHandler.Get))
	mux.Handle("PUT /api/contact/{id}", wrapAdmin(inquiryHandler.Update))
	mux.Handle("DELETE /api/contact/{id}", wrapAdmin(inquiryHandler.Delete))

	mux.Handle("GET /api/admin/stats", wrapAdmin(statsHandler.Get))

	// Seed: POST は SEED_SECRET、GET は AUTO_SEED_DATABASE で保護
	mux.HandleFunc("POST /api/seed", seedHandler.Seed)
	mux.HandleFunc("GET /api/seed", seedHandler.Auto)

	mux.Handle("GET /metrics", metrics.Handler())
	if local, ok := files.(*storage.LocalStorage); ok {
		prefix := strings.TrimSuffix(cfg.UploadURLPrefix, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(local.Dir()))))
	}

	if cfg.AutoSeedDatabase {
		autoSeed(ctx, seedService)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", store.Driver, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if !cfg.IsS3Storage() {
		return storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPrefix), nil
	}
	s3, err := storage.NewS3Storage(ctx, storage.S3Options{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		PublicURL:       cfg.S3PublicURL,
		UsePathStyle:    cfg.S3UsePathStyle,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
}

// autoSeed は起動時に一度だけサンプルデータを投入する。失敗しても起動は続ける。
func autoSeed(ctx context.Context, seed service.SeedService) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	res, err := seed.SeedIfNeeded(ctx)
	if err != nil {
		slog.Error("auto seed failed", "error", err)
		return
	}
	slog.Info("auto seed", "message", res.Message, "success", res.Success)
}
