package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/openlearn/lms-backend/internal/db"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	Mongo    *db.MongoService
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	mongoService, err := db.NewMongoService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mongoService.EnsureIndexes(ctx); err != nil {
		log.Sync()
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	reposet := wireRepos(mongoService.Database(), log)
	serviceset := wireServices(log, reposet)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, cfg, handlerset)

	return &App{
		Log:      log,
		Mongo:    mongoService,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting server", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Mongo.Close(ctx); err != nil {
			a.Log.Warn("mongo disconnect failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
