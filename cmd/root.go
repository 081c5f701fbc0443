package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/roadmap"
	"github.com/abhisek/pathwise/internal/store"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:           "pathwise",
	Short:         "AI career roadmaps",
	Long:          "Pathwise suggests tech careers and tracks progress through AI-generated ten-level learning roadmaps.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(careersCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func addGlobalFlags(pf *pflag.FlagSet) {
	pf.String("db", "", "Database file for sqlite, connection URL for postgres (overrides PATHWISE_DB)")
	pf.String("driver", "", "Database driver: sqlite or postgres (overrides PATHWISE_DB_DRIVER)")
	pf.StringP("user", "u", "", "User ID (overrides PATHWISE_USER, defaults to the OS user)")
	pf.String("scope", "", "Which completions count: enrollment or user (overrides PATHWISE_PROGRESS_SCOPE)")
	pf.Bool("plain", false, "Render without colors")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
}

// Session identifies the user a command acts for.
type Session struct {
	UserID string
}

// resolveSession returns the user from --user, then PATHWISE_USER, then the
// OS account name.
func resolveSession(cmd *cobra.Command) (Session, error) {
	if u, _ := cmd.Flags().GetString("user"); strings.TrimSpace(u) != "" {
		return Session{UserID: strings.TrimSpace(u)}, nil
	}
	if u := strings.TrimSpace(os.Getenv("PATHWISE_USER")); u != "" {
		return Session{UserID: u}, nil
	}
	current, err := user.Current()
	if err != nil || current.Username == "" {
		return Session{}, errors.New("cannot determine user: pass --user or set PATHWISE_USER")
	}
	return Session{UserID: current.Username}, nil
}

// resolveDB returns the driver and DSN. For sqlite the DSN is a file path
// from --db, then PATHWISE_DB, then the default XDG path. Postgres needs an
// explicit connection URL.
func resolveDB(cmd *cobra.Command) (driver, dsn string, err error) {
	driver, _ = cmd.Flags().GetString("driver")
	if driver == "" {
		driver = os.Getenv("PATHWISE_DB_DRIVER")
	}
	if driver == "" {
		driver = store.DriverSQLite
	}
	p, _ := cmd.Flags().GetString("db")

	switch driver {
	case store.DriverSQLite:
		if p != "" {
			return driver, p, store.EnsureDir(p)
		}
		p, err := store.DefaultDBPath()
		return driver, p, err
	case store.DriverPostgres:
		if p == "" {
			p = os.Getenv("PATHWISE_DB")
		}
		if p == "" {
			return "", "", errors.New("postgres needs a connection URL in --db or PATHWISE_DB")
		}
		return driver, p, nil
	}
	return "", "", fmt.Errorf("unknown database driver %q", driver)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}

// env bundles what a command needs. Close releases it.
type env struct {
	session Session
	store   *store.Store
	logger  *zap.Logger
	theme   theme.Theme
}

func openEnv(cmd *cobra.Command) (*env, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}

	driver, dsn, err := resolveDB(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	s, err := store.OpenDriver(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("database opened", zap.String("driver", driver))

	th := theme.Default()
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		th = theme.Plain()
	}
	return &env{store: s, logger: logger, theme: th}, nil
}

// openSessionEnv resolves the user on top of openEnv.
func openSessionEnv(cmd *cobra.Command) (*env, error) {
	sess, err := resolveSession(cmd)
	if err != nil {
		return nil, err
	}
	e, err := openEnv(cmd)
	if err != nil {
		return nil, err
	}
	e.session = sess
	return e, nil
}

func (e *env) Close() {
	e.store.Close()
	_ = e.logger.Sync()
}

// provider builds the configured LLM provider. When none is configured the
// returned provider fails on use, so commands that only read stored
// roadmaps still work.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	p, err := llm.NewProviderFromEnv(ctx, e.store.EventRepo(), e.logger)
	if errors.Is(err, llm.ErrNotConfigured) {
		e.logger.Debug("no LLM provider configured")
		return llm.Unavailable(err), nil
	}
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return p, nil
}

func (e *env) engine(cmd *cobra.Command) (*roadmap.Engine, error) {
	cfg := roadmap.ConfigFromEnv()
	if v, _ := cmd.Flags().GetString("scope"); v != "" {
		scope, err := roadmap.ParseScope(v)
		if err != nil {
			return nil, err
		}
		cfg.ProgressScope = scope
	}
	p, err := e.provider(cmd.Context())
	if err != nil {
		return nil, err
	}
	return roadmap.New(e.store, p, cfg, e.logger), nil
}
