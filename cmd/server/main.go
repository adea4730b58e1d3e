package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
	"github.com/benbeisheim/greedychess-backend/internal/config"
	"github.com/benbeisheim/greedychess-backend/internal/controller"
	"github.com/benbeisheim/greedychess-backend/internal/middleware"
	"github.com/benbeisheim/greedychess-backend/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal("failed to load config", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "greedychess",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:               "greedychess",
		DisableStartupMessage: true,
		Immutable:             true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.AllowOrigins != "*",
	}))
	app.Use(middleware.RequestLogger(logger))

	// Initialize services
	gameManager := service.NewGameManager(service.ManagerOptions{
		Agent:     chess.GreedyAgent{},
		AgentSide: cfg.AgentSide,
		Logger:    logger,
	})
	gameService := service.NewGameService(gameManager)
	go gameManager.RunMatchmaking(ctx, cfg.MatchmakingInterval)

	// Initialize controllers
	gameController := controller.NewGameController(gameService, logger)
	wsController := controller.NewWebSocketController(gameService, logger)
	controller.RegisterRoutes(app, gameController, wsController, splitOrigins(cfg.AllowOrigins))

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	logger.Info("listening", "addr", cfg.Addr, "agent", chess.GreedyAgent{}.Name(), "agentSide", cfg.AgentSide)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
