package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/portfolio/internal/database"
	"github.com/deppfellow/portfolio/internal/handler"
	"github.com/deppfellow/portfolio/internal/repository"
	"github.com/deppfellow/portfolio/internal/router"
	"github.com/deppfellow/portfolio/internal/server"
	"github.com/deppfellow/portfolio/internal/service"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and the record API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply database migrations before serving")

	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	log := &rt.logger

	if migrate {
		if err := database.Migrate(ctx, log, rt.cfg); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	srv, err := server.New(ctx, rt.cfg, log, rt.loggerService)
	if err != nil {
		rt.loggerService.Shutdown()
		return fmt.Errorf("serve: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)

	r, err := router.NewRouter(srv, handlers)
	if err != nil {
		return errors.Join(fmt.Errorf("serve: %w", err), srv.Shutdown(ctx))
	}
	srv.SetupHTTPServer(r)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(err, srv.Shutdown(shutdownCtx))

	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
