package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-kit/log/level"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"classroom_backend/internals/configs"
	database "classroom_backend/internals/databases"
	helper "classroom_backend/internals/helpers"
	middlewares "classroom_backend/internals/middlewares"
	routes "classroom_backend/internals/route"
	"classroom_backend/internals/seeds"
)

func main() {
	cfg, notes := configs.LoadEnv()
	logger := configs.NewLogger(os.Stdout, cfg.LogLevel)
	for _, n := range notes {
		_ = level.Info(logger).Log("msg", n)
	}

	app := fiber.New(fiber.Config{
		AppName:                 cfg.AppName,
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               6 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	middlewares.SetupMiddlewares(app, cfg, logger)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		_ = level.Error(logger).Log("msg", "database connect", "err", err)
		os.Exit(1)
	}
	database.WarmUp(db, logger)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = level.Error(logger).Log("msg", "migrate", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeeds {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := seeds.RunAllSeeds(ctx, db, logger)
		cancel()
		if err != nil {
			_ = level.Error(logger).Log("msg", "seeds", "err", err)
			os.Exit(1)
		}
	}

	routes.SetupRoutes(app, db, cfg, logger)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		_ = level.Info(logger).Log("msg", "listening", "port", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			_ = level.Error(logger).Log("msg", "server error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown, then close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if err := database.Close(db); err != nil {
		_ = level.Warn(logger).Log("msg", "close database", "err", err)
	}
	_ = level.Info(logger).Log("msg", "stopped")
}
