package cmd

import (
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/transport/tui"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, opts)
		},
	}
}

func runPlay(cmd *cobra.Command, opts *rootOptions) error {
	conf, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if conf.LogFile != "" {
		logFile, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		defer logFile.Close()

		logOut = logFile
	}

	app, logger, err := openApp(cmd.Context(), conf, logOut)
	if err != nil {
		return err
	}
	defer closeApp(app, logger)

	program := tea.NewProgram(tui.New(cmd.Context(), logger, app.Manager))
	if _, err = program.Run(); err != nil {
		return fmt.Errorf("error running board: %w", err)
	}

	return nil
}
