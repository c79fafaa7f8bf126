package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/bookkeepd/bookkeepd/internal/buildinfo"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/core/services"
	"github.com/bookkeepd/bookkeepd/internal/ctxlog"
	"github.com/bookkeepd/bookkeepd/internal/platform/config"
	"github.com/bookkeepd/bookkeepd/internal/repositories/database/pgsql"
	"github.com/bookkeepd/bookkeepd/pkg/database"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bookkeepd",
		Short:   "Multi-tenant double-entry bookkeeping engine",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newLedgerCommand())
	rootCmd.AddCommand(newRollupCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}

// appEnv bundles the dependencies a command needs once connected.
type appEnv struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

// setupEnv loads configuration, connects to the database, and wires the
// repository and service containers. Callers must defer env.close().
func setupEnv(ctx context.Context) (*appEnv, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(pool)
	svcContainer := services.NewServiceContainer(repos)

	return &appEnv{cfg: cfg, pool: pool, services: svcContainer}, nil
}

// close releases the pool, waiting at most the configured shutdown timeout
// for in-flight queries to finish.
func (e *appEnv) close() {
	done := make(chan struct{})
	go func() {
		database.ClosePgxPool(e.pool)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(e.cfg.ShutdownTimeout):
		slog.Warn("database pool close timed out", slog.Duration("timeout", e.cfg.ShutdownTimeout))
	}
}

// commandContext returns a context carrying a logger tagged with the command name.
func commandContext(ctx context.Context, command string) context.Context {
	return ctxlog.WithLogger(ctx, slog.Default().With(slog.String("command", command)))
}
