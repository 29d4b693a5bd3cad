package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gaslamp-games/interrogation/internal/ai"
	"github.com/gaslamp-games/interrogation/internal/casefile"
	"github.com/gaslamp-games/interrogation/internal/envstruct"
	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/gaslamp-games/interrogation/internal/logging"
	"github.com/gaslamp-games/interrogation/internal/pprofserver"
	"github.com/joho/godotenv"
)

// placeholderAPIKey ships in the example .env file. Refusing to start with it
// catches unconfigured deployments before they serve traffic.
const placeholderAPIKey = "your_openai_api_key_here"

type config struct {
	APIKey    string `env:"OPENAI_API_KEY"`
	BaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Addr      string `env:"INTERROGATION_ADDR" envDefault:"localhost:5000"`
	DataDir   string `env:"INTERROGATION_DATA_DIR" envDefault:"./data"`
	// Empty disables the pprof side server.
	PprofPort string `env:"INTERROGATION_PPROF_PORT" envDefault:":6060"`
}

type application struct {
	logger    *slog.Logger
	config    config
	aiClient  *ai.Client
	casefiles *casefile.Store
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse environment")
	}
	if cfg.APIKey == "" || cfg.APIKey == placeholderAPIKey {
		return errors.New("OPENAI_API_KEY not found or still contains the placeholder value")
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "OpenAI API key loaded")

	if cfg.PprofPort != "" {
		// Initialise pprof listening on localhost so that it's not open to the world.
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	app := &application{
		logger:    logger,
		config:    cfg,
		aiClient:  ai.NewClient(cfg.APIKey, cfg.BaseURL, logger),
		casefiles: casefile.NewStore(cfg.DataDir, logger),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	// A missing .env file is fine, the environment may be configured externally.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "error loading .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}
