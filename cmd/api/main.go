package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zizouhuweidi/trivia/internal/cache"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/repository/sqlite"
	"github.com/zizouhuweidi/trivia/internal/service"
)

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	ctx := context.Background()

	// Initialize repositories
	questionRepo, categoryRepo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	// Categories are read-only through the API, so they can be cached
	if cfg.Redis.Enabled {
		redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisClient.Close()

		categoryRepo = cache.NewCategoryCache(categoryRepo, redisClient, cfg.Redis.CategoryTTL, log)
		log.Info("category cache enabled", slog.String("addr", cfg.Redis.Addr()))
	}

	// Initialize services
	triviaService := service.NewTriviaService(questionRepo, categoryRepo, log)

	e := handler.NewRouter(triviaService, log)

	// Start server
	go func() {
		log.Info("starting server", slog.String("addr", cfg.HTTP.Addr), slog.String("env", cfg.Env))
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("failed to shut down server", slog.Any("error", err))
	}
	log.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (domain.QuestionRepository, domain.CategoryRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.ConnectSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Database.AutoSchema {
			if err := sqlite.EnsureSchema(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, nil, err
			}
		}
		log.Info("using sqlite store", slog.String("path", cfg.SQLite.Path))
		return sqlite.NewQuestionRepository(db), sqlite.NewCategoryRepository(db), func() { _ = db.Close() }, nil

	default:
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Database.AutoSchema {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, nil, err
			}
		}
		log.Info("using postgres store", slog.String("host", cfg.Postgres.Host), slog.String("db", cfg.Postgres.DBName))
		return postgres.NewQuestionRepository(pool), postgres.NewCategoryRepository(pool), pool.Close, nil
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
