package main

import (
	"Blogicum/internal/api/config"
	"Blogicum/internal/pkg/cron"
	"Blogicum/internal/pkg/database"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/minio"
	"Blogicum/internal/pkg/redis"
	"Blogicum/internal/wire"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	var logWriters []io.Writer
	logFile, err := logger.OpenFile(cfg.Log)
	if err != nil {
		log.Error("Fatal error: failed to open log file", "err", err)
		panic(err)
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
		logWriters = append(logWriters, logFile)
	}
	l := logger.New(cfg.Log, logWriters...)
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 数据库连接
	db, err := database.NewGormDB(&cfg.DB, l)
	if err != nil {
		l.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}

	// Redis 连接
	rdb, err := redis.NewClient(ctx, cfg.Redis, l)
	if err != nil {
		l.Error("Fatal error: failed to create redis connection", "err", err)
		panic(err)
	}
	defer func() { _ = rdb.Close() }()

	// MinIO 连接
	storage, err := minio.NewStorage(ctx, cfg.MinIO, l)
	if err != nil {
		l.Error("Fatal error: failed to initialize MinIO", "err", err)
		panic(err)
	}

	// 依赖注入
	app := wire.BuildApplication(cfg, db, rdb, storage, os.Stdout, l)

	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	if err = cron.InitCron(app.CronMgr); err != nil {
		l.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		l.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		l.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			l.Info("Received signal, shutting down...", "signal", sig.String())
			cancel()
		}

		timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		l.Error("App exited with error", "err", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	l.Info("App exited successfully.")
}
