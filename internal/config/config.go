// Package config loads server settings from flags, falling back to
// environment variables and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
)

// ErrInvalidConfig indicates a setting that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the server settings.
type Config struct {
	Addr                string
	AllowOrigins        string
	LogLevel            log.Level
	MatchmakingInterval time.Duration
	// AgentSide is the side the greedy agent plays in agent games.
	AgentSide chess.Side
}

// Load parses args (without the program name). Each flag defaults to its
// environment variable when set.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", env("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", env("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	level := fs.String("log-level", env("CHESS_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	interval := fs.String("matchmaking-interval", env("CHESS_MATCHMAKING_INTERVAL", "1s"), "how often waiting players are paired")
	agentSide := fs.String("agent-side", env("CHESS_AGENT_SIDE", "black"), "side the agent plays: white or black")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := &Config{
		Addr:         *addr,
		AllowOrigins: *origins,
	}

	var err error
	if cfg.LogLevel, err = log.ParseLevel(*level); err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidConfig, *level)
	}
	if cfg.MatchmakingInterval, err = time.ParseDuration(*interval); err != nil || cfg.MatchmakingInterval <= 0 {
		return nil, fmt.Errorf("%w: matchmaking interval %q", ErrInvalidConfig, *interval)
	}
	if err := cfg.AgentSide.UnmarshalText([]byte(strings.ToLower(*agentSide))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	return cfg, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
