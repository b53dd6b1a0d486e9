package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"contribution-engine/internal/config"
	"contribution-engine/internal/model"
	"contribution-engine/internal/settings"
	"contribution-engine/internal/sqlite"
)

// App is the contribution-engine command line.
type App struct {
	rootCmd *cobra.Command

	configPath string
	dbPath     string
}

// NewApp builds the command tree.
func NewApp(version string) *App {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:           "contribution-engine",
		Short:         "401(k) contribution settings and retirement projections",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "C", "", "Path to a YAML or TOML configuration file (default $CONTRIB_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&app.dbPath, "db", "", "SQLite database path (overrides configuration)")

	rootCmd.AddCommand(
		app.newServeCmd(),
		app.newProjectCmd(),
		app.newSettingsCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the command line with os.Args.
func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs, SetOut and SetErr are used by tests.
func (app *App) SetArgs(args []string) { app.rootCmd.SetArgs(args) }
func (app *App) SetOut(w io.Writer)    { app.rootCmd.SetOut(w) }
func (app *App) SetErr(w io.Writer)    { app.rootCmd.SetErr(w) }

func (app *App) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if app.configPath != "" {
		cfg, err = config.LoadFile(app.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if app.dbPath != "" {
		cfg.DB.Path = app.dbPath
	}
	return cfg, nil
}

// openSettings opens the store at cfg.DB.Path and wraps it in a service.
func openSettings(cfg config.Config, logger *slog.Logger) (*settings.Service, *sqlite.DB, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, nil, err
	}
	svc := settings.NewService(sqlite.NewSettingsRepository(db), model.DefaultSettings(), logger)
	return svc, db, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
