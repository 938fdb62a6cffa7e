package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rpggio/portfolio/internal/catalogfile"
	"github.com/rpggio/portfolio/internal/config"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/comment"
	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/resume"
	"github.com/rpggio/portfolio/internal/sqlite"
	"github.com/rpggio/portfolio/internal/transport"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logWriter := io.Writer(os.Stdout)
	if cfg.Log.File != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = io.MultiWriter(os.Stdout, fileWriter)
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	for _, path := range []string{cfg.DB.StatsPath, cfg.DB.ContentPath} {
		if err := ensureDBDir(path); err != nil {
			return fmt.Errorf("failed to prepare database path: %w", err)
		}
	}

	statsDB, err := sqlite.OpenStats(cfg.DB.StatsPath)
	if err != nil {
		return fmt.Errorf("failed to open stats database: %w", err)
	}
	defer statsDB.Close()

	contentDB, err := sqlite.OpenContent(cfg.DB.ContentPath)
	if err != nil {
		return fmt.Errorf("failed to open content database: %w", err)
	}
	defer contentDB.Close()

	counterRepo := sqlite.NewCounterRepository(statsDB)
	commentRepo := sqlite.NewCommentRepository(statsDB)
	achievementRepo := sqlite.NewAchievementRepository(contentDB)
	activityRepo := sqlite.NewActivityRepository(contentDB)

	var projects catalog.ProjectSource = sqlite.NewProjectRepository(contentDB)
	if cfg.Catalog.ProjectsSource == config.SourceFile {
		source := catalogfile.New(cfg.Catalog.ProjectsFile)
		logger.Info("serving projects from file", "path", source.Path())
		projects = source
	}

	policies := counter.Policies{
		counter.KindLike: cfg.Limits.LikeCooldown,
		counter.KindView: cfg.Limits.ViewCooldown,
	}
	gate := counter.NewGate(counterRepo, policies, logger)
	statsSvc := counter.NewService(counterRepo, policies, logger)
	commentSvc := comment.NewService(commentRepo, logger)
	catalogSvc := catalog.NewService(projects, achievementRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	resumes := resume.New(cfg.Resume.Path, cfg.Resume.MaxBytes, logger)
	logger.Debug("resume store", "path", resumes.Path(), "max_bytes", cfg.Resume.MaxBytes)
	auth := admin.NewAuthenticator(cfg.Admin.PasswordHash, cfg.Admin.SessionSecret, cfg.Admin.SessionTTL)

	if cfg.Admin.PasswordHash == "" {
		logger.Warn("admin password hash not configured; admin login is disabled")
	}

	router := transport.NewServer(transport.Services{
		Gate:     gate,
		Stats:    statsSvc,
		Comments: commentSvc,
		Catalog:  catalogSvc,
		Resumes:  resumes,
		Activity: activitySvc,
		Auth:     auth,
	}, transport.Options{
		TrustProxy:   cfg.Server.TrustProxy,
		AssetsDir:    cfg.Server.AssetsDir,
		IndexFile:    cfg.Server.IndexFile,
		CookieSecure: cfg.Admin.CookieSecure,
		MaxUpload:    cfg.Resume.MaxBytes,
		Logger:       logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := cron.New()
	if cfg.Limits.PruneSchedule != "" {
		_, err := scheduler.AddFunc(cfg.Limits.PruneSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := statsSvc.PruneExpired(ctx, time.Now()); err != nil {
				logger.Error("failed to prune client records", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid prune schedule %q: %w", cfg.Limits.PruneSchedule, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", httpServer.Addr, "projects", cfg.Catalog.ProjectsSource)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		<-ctx.Done()
		<-scheduler.Stop().Done()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
