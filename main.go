package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"folio/internal/assets"
	"folio/internal/config"
	"folio/internal/constants"
	"folio/internal/handlers"
	"folio/internal/repository"
	"folio/internal/services"
	"folio/internal/tasks"
	"folio/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Global filesystems that will be populated by either assets_dev.go or assets_prod.go at startup.
var templatesFS fs.FS
var staticFS fs.FS

func main() {
	unsafe := flag.Bool("unsafe", false, "allow insecure cookies")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *unsafe {
		cfg.SecureCookies = false
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contentFS, err := openContent(cfg.ContentDir)
	if err != nil {
		if !cfg.RemoteContent() {
			return err
		}
		// Remote posts may still reference local images.
		logger.Warn("content directory unavailable", "dir", cfg.ContentDir, "error", err)
		contentFS = os.DirFS(cfg.ContentDir)
	}

	// Content repository: remote index, embedded posts, or the directory.
	var repo repository.ContentRepository
	switch {
	case cfg.RemoteContent():
		remote, err := repository.NewRemoteRepository(cfg.ContentIndexURL, cfg.FetchTimeout)
		if err != nil {
			return err
		}
		repo = remote
	case embeddedContent:
		inline, err := repository.InlineFromFS(contentFS)
		if err != nil {
			return err
		}
		repo = inline
	default:
		repo = repository.NewFSRepository(contentFS)
	}

	registry := assets.NewRegistry(nil)
	refreshAssets := func() error {
		found, err := assets.Scan(contentFS, cfg.AssetPrefix)
		if err != nil {
			return err
		}
		registry.Replace(found)
		return nil
	}
	if err := refreshAssets(); err != nil {
		return err
	}
	logger.Info("content assets registered", "count", registry.Len())

	db, err := utils.InitSearchDatabase(cfg.SearchDB)
	if err != nil {
		return err
	}

	catalog := services.NewCatalogService(repo, cfg.LoadConcurrency, logger.With("component", "catalog"))
	postService := services.NewPostService(catalog, assets.NewResolver(registry))
	searchService := services.NewSearchService(catalog, repository.NewIndexRepository(db), logger.With("component", "search"))

	if err := searchService.Reindex(ctx); err != nil {
		logger.Warn("initial search index build failed", "error", err)
	}

	scheduler := tasks.NewScheduler(logger.With("component", "scheduler"))
	if err := scheduler.AddTask("reindex", cfg.ReindexCron, cfg.FetchTimeout*6, searchService.Reindex); err != nil {
		return err
	}
	scheduler.Start()

	if cfg.WatchContent && !cfg.RemoteContent() && !embeddedContent {
		watcher, err := tasks.NewWatcher(cfg.ContentDir, constants.ReindexDebounce, func(ctx context.Context) error {
			if err := refreshAssets(); err != nil {
				return err
			}
			return searchService.Reindex(ctx)
		}, logger.With("component", "watcher"))
		if err != nil {
			logger.Warn("content watcher disabled", "error", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	renderer, err := handlers.NewRenderer(templatesFS)
	if err != nil {
		return err
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 24 * 365,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Posts:       postService,
		Search:      searchService,
		Renderer:    renderer,
		Sessions:    store,
		StaticFS:    staticFS,
		ContentFS:   contentFS,
		AssetPrefix: cfg.AssetPrefix,
		Site: handlers.Site{
			Title:       cfg.SiteTitle,
			Description: cfg.SiteDescription,
		},
		Logger: logger.With("component", "http"),
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
