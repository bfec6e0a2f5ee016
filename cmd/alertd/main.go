package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alert-engine/internal/api"
	"alert-engine/internal/config"
	"alert-engine/internal/db"
	"alert-engine/internal/engine"
	"alert-engine/internal/kafka"
	"alert-engine/internal/lock"
	"alert-engine/internal/logging"
	"alert-engine/internal/utils"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to DB
	var dbConn *db.DB
	err = utils.Retry(logger, 5, 3*time.Second, func() error {
		var connErr error
		dbConn, connErr = db.New(ctx, cfg.DB.DSN)
		return connErr
	})
	if err != nil {
		logger.Errorf("DB connect failed: %v", err)
		log.Fatalf("DB connect failed: %v", err)
	}
	defer dbConn.Close()

	if err := dbConn.EnsureSchema(ctx); err != nil {
		logger.Errorf("Schema setup failed: %v", err)
		log.Fatalf("Schema setup failed: %v", err)
	}

	// Connect to lock store
	lockStore := lock.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password)
	if err := lockStore.Ping(ctx); err != nil {
		logger.Errorf("Redis connect failed: %v", err)
		log.Fatalf("Redis connect failed: %v", err)
	}
	defer lockStore.Close()

	lease := lock.NewLease(lockStore, cfg.Lock.Key, time.Duration(cfg.Lock.TTLSeconds)*time.Second, logger)
	eng := engine.New(dbConn, lease, logger)

	// Start Kafka trigger consumer when a broker is configured
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer(cfg, eng, logger)
		go consumer.Start(ctx)
	}

	// Start API server
	r := api.NewRouter(dbConn, eng, logger, cfg)
	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := r.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info("Shutting down...")
	cancel()
	if consumer != nil {
		consumer.Close()
	}
	logger.Info("Service stopped")
}
