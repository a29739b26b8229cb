// Package seminard parses seminar service flags and launches the service.
package seminard

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	entrypoint "github.com/seminarhub/backend/internal/platform/cmd"
	server "github.com/seminarhub/backend/internal/services/seminar/app"
)

// Config holds seminard command configuration.
type Config struct {
	Port int `env:"SEMINARHUB_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into Config. A local .env file is
// loaded first when present.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The seminar HTTP server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the seminar HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeminard, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
