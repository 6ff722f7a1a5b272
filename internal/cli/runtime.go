package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio/internal/config"
	"github.com/deppfellow/portfolio/internal/logger"
)

// runtime is what every command that touches the database needs.
type runtime struct {
	cfg           *config.Config
	logger        zerolog.Logger
	loggerService *logger.LoggerService
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)

	return &runtime{
		cfg:           cfg,
		logger:        logger.NewLoggerWithService(cfg.Observability, loggerService),
		loggerService: loggerService,
	}, nil
}
