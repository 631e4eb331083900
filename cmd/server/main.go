package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesboard/config"
	"salesboard/internal/handler"
	"salesboard/internal/httpserver"
	"salesboard/internal/repository"
	"salesboard/internal/service"
	"salesboard/internal/ws"
	"salesboard/pkg/backup"
	"salesboard/pkg/db"
	"salesboard/pkg/logger"
	"salesboard/pkg/mq"
	"salesboard/pkg/outbox"
	"salesboard/pkg/redis"
	"salesboard/pkg/util"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting salesboard...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
		zap.Bool("auto_rollover", cfg.Board.AutoRolloverEnabled),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	log.Info("Initializing database connection...")
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()
	log.Info("Database connection established successfully")

	// Redis once-guards
	rdb := redis.NewRedisClient(cfg.Redis)
	deduper := util.NewDeduper(rdb, 8*24*time.Hour, log)

	// MQ publisher + outbox dispatcher
	log.Info("Initializing MQ publisher...")
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	outboxRepo := outbox.NewRepository(dbConn)
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, log)
	go dispatcher.Start(ctx)

	// Mongo week backup. Best effort end to end: a failure here degrades
	// to running without cold backups.
	backupStore, err := backup.NewStore(cfg.Backup, log)
	if err != nil {
		log.Error("Week backup unavailable, continuing without it", zap.Error(err))
		backupStore = nil
	}
	defer backupStore.Close(context.Background())

	// Repositories
	projectRepo := repository.NewProjectRepository(dbConn, log)
	recordRepo := repository.NewWeeklyRecordRepository(dbConn, log)
	settingsRepo := repository.NewSettingsRepository(dbConn, log)
	streakRepo := repository.NewStreakRepository(dbConn, log)
	bestRepo := repository.NewPersonalBestRepository(dbConn, log)
	achievementRepo := repository.NewAchievementRepository(dbConn, log)
	championRepo := repository.NewChampionRepository(dbConn, log)
	rolloverRepo := repository.NewRolloverRepository(dbConn, outboxRepo, log)

	// Seed the weekly goal with the configured default on first boot.
	if _, err := settingsRepo.GetInt(ctx, repository.SettingWeeklyGoal, cfg.Board.DefaultWeeklyGoal); err != nil {
		log.Fatal("Failed to seed weekly goal", zap.Error(err))
	}

	// WebSocket hub
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	// Services
	streakTracker := service.NewStreakTracker(streakRepo, log)
	bestTracker := service.NewPersonalBestTracker(bestRepo, log)
	achievementEval := service.NewAchievementEvaluator(achievementRepo, deduper, log)
	milestoneTrigger := service.NewMilestoneTrigger(settingsRepo, log)

	boardService := service.NewBoardService(
		projectRepo,
		streakTracker,
		bestTracker,
		achievementEval,
		milestoneTrigger,
		settingsRepo,
		publisher,
		hub,
		log,
	)
	rolloverManager := service.NewRolloverManager(
		projectRepo,
		rolloverRepo,
		championRepo,
		backupStore,
		settingsRepo,
		log,
	)

	if cfg.Board.AutoRolloverEnabled {
		autoRollover := service.NewAutoRollover(rolloverManager, deduper, cfg.Board.AutoRolloverCheck(), log)
		go autoRollover.Start(ctx)
	} else {
		log.Info("Auto rollover disabled by config")
	}

	// HTTP Server
	boardHandler := handler.NewBoardHandler(boardService, log)
	trackingHandler := handler.NewTrackingHandler(streakTracker, bestRepo, achievementEval, championRepo, log)
	recordHandler := handler.NewRecordHandler(recordRepo, log)
	rolloverHandler := handler.NewRolloverHandler(rolloverManager, boardService, log)

	router := httpserver.NewRouter(
		boardHandler,
		trackingHandler,
		recordHandler,
		rolloverHandler,
		hub,
		log,
		dbConn,
		publisher,
	)

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("salesboard is fully initialized and running",
		zap.String("http_port", port),
	)

	// 优雅退出处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down salesboard gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("salesboard shutdown complete")
}
