package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-sessions/internal"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/config"
)

const defaultConfigPath = "config.yml"

var errSessionRequired = errors.New("--session is required")

type rootOptions struct {
	configPath string
	logLevel   string
	ephemeral  bool
}

// Execute - runs the command tree until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe on 3x3, 4x4 and 5x5 boards with saved sessions",
		Long: `Play tic-tac-toe in the terminal. Every game is a named session with a full
move history that can be undone, redone or jumped through, and every change is
saved to the configured storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to the config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level (debug, info)")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "Keep sessions in memory only")

	rootCmd.AddCommand(
		newPlayCmd(opts),
		newNewCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newMoveCmd(opts),
		newUndoCmd(opts),
		newRedoCmd(opts),
		newJumpCmd(opts),
		newResetCmd(opts),
		newDeleteCmd(opts),
		newSchemaCmd(),
	)

	return rootCmd
}

// loadConfig - reads .env, then the config file, then applies flag overrides.
func (that *rootOptions) loadConfig() (*config.Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	conf, err := config.Load(that.configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if that.logLevel != "" {
		conf.LogLevel = that.logLevel
	}

	if that.ephemeral {
		conf.Storage.Driver = config.StorageMemory
	}

	return conf, nil
}

// openApp - opens the configured storage and loads the session set, logging to out.
func openApp(ctx context.Context, conf *config.Config, out io.Writer) (*application.App, *slog.Logger, error) {
	logger := initLogger(conf, out)

	app, err := application.New(ctx, logger, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening sessions: %w", err)
	}

	return app, logger, nil
}

// initialize logger.
func initLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// withApp - runs fn against a freshly loaded session manager and closes storage afterwards.
func (that *rootOptions) withApp(cmd *cobra.Command, fn func(app *application.App) error) error {
	conf, err := that.loadConfig()
	if err != nil {
		return err
	}

	app, logger, err := openApp(cmd.Context(), conf, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeApp(app, logger)

	return fn(app)
}

// withSession - like withApp, but makes the session named by --session active first.
func (that *rootOptions) withSession(cmd *cobra.Command, sessionID string, fn func(app *application.App) error) error {
	if sessionID == "" {
		return errSessionRequired
	}

	return that.withApp(cmd, func(app *application.App) error {
		if err := app.Manager.LoadSession(cmd.Context(), sessionID); err != nil {
			return fmt.Errorf("%w: %s", err, sessionID)
		}

		return fn(app)
	})
}

func closeApp(app *application.App, logger *slog.Logger) {
	if err := app.Close(); err != nil {
		logger.Error("failed to close storage", "error", err)
	}
}
