package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go-splendor/config"
	"go-splendor/middleware"
	"go-splendor/repository"
	"go-splendor/router"
	"go-splendor/service"
	"go-splendor/utils"
	"go-splendor/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := cfg.Game.Rules()
	if err != nil {
		return err
	}

	rdb, err := repository.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, rdb.Close()) }()

	opts := []service.Option{
		service.WithRules(rules),
		service.WithShuffle(cfg.Game.ShuffleDecks),
		service.WithLogger(logger),
	}
	if cfg.MySQL.Enabled() {
		db, dbErr := repository.NewMySQL(ctx, cfg.MySQL)
		if dbErr != nil {
			return dbErr
		}
		defer func() { err = multierr.Append(err, db.Close()) }()

		archive := repository.NewMySQLResultArchive(db)
		if err := archive.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, service.WithArchive(archive))
		logger.Info("archiving finished games", zap.String("mysql", cfg.MySQL.Addr))
	}

	rooms := service.NewRoomService(repository.NewRedisGameRepository(rdb), opts...)
	if _, err := rooms.Restore(ctx); err != nil {
		return err
	}

	tokens := utils.NewTokenIssuer(cfg.JWT)
	hub := ws.NewHub(rooms, tokens, logger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.InitRouter(r, router.Deps{Rooms: rooms, Tokens: tokens, Hub: hub})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
