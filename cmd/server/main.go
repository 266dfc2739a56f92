package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ecotrack/waste-report-api/internal/auth"
	"github.com/ecotrack/waste-report-api/internal/config"
	"github.com/ecotrack/waste-report-api/internal/database"
	"github.com/ecotrack/waste-report-api/internal/handler"
	"github.com/ecotrack/waste-report-api/internal/middleware"
	"github.com/ecotrack/waste-report-api/internal/queue"
	"github.com/ecotrack/waste-report-api/internal/repository"
	"github.com/ecotrack/waste-report-api/internal/router"
	"github.com/ecotrack/waste-report-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	db, err := database.Open(cfg)
	if err != nil {
		zap.L().Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	reports := repository.NewWasteReportRepo(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTLMin)
	authn := auth.NewAuthenticator(users)

	// Redis-backed daily submission quota; nil client disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		zap.L().Warn("redis unavailable, report quota disabled")
	}
	reportQuota := middleware.NewDailyReportLimit(config.LoadReportLimitConfig(), rdb)

	ah := handler.NewAuthHandler(cfg, users, tokens, authn)
	uh := handler.NewUserHandler(cfg, users)
	rh := handler.NewReportHandler(reports)
	rh.PublishSubmitted = service.PublishReportSubmitted
	rh.PublishStatusChanged = service.PublishReportStatusChanged

	// Background audit-trail consumer; reconnects on its own.
	go queue.StartReportConsumer()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAPI(e, ah, uh, rh, tokens, users, reportQuota)

	addr := ":" + cfg.Port
	zap.L().Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

// newLogger picks a human-readable logger for dev and JSON for everything
// else.
func newLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
