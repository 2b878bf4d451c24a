package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"charmly/config"
	"charmly/internal/ai"
	"charmly/internal/ai/gemini"
	"charmly/internal/database"
	"charmly/internal/logger"
	"charmly/internal/router"
	"charmly/pkg/cloudinary"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	if _, err := database.SeedCompanion(db); err != nil {
		log.Fatal("seed companion", zap.Error(err))
	}

	gen, err := gemini.NewGenerator(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model)
	if err != nil {
		log.Fatal("gemini", zap.Error(err))
	}
	companion := ai.NewCompanion(gen, log)

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatal("cloudinary", zap.Error(err))
		}
	} else {
		log.Warn("cloudinary not configured; avatar uploads disabled")
	}

	engine := router.Setup(cfg, db, companion, cloud, log)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
