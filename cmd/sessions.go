package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-sessions/internal"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
)

func newNewCmd(opts *rootOptions) *cobra.Command {
	var (
		size         int
		nameX, nameO string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(app *application.App) error {
				session, err := app.Manager.CreateSession(cmd.Context(), size, nameX, nameO)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), session.ID)
				renderBoard(cmd.OutOrStdout(), session)

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&size, "size", entity.DefaultBoardSize, "Board size (3, 4 or 5)")
	cmd.Flags().StringVar(&nameX, "x", "", "Name of the X player")
	cmd.Flags().StringVar(&nameO, "o", "", "Name of the O player")

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(app *application.App) error {
				return renderSessions(cmd.OutOrStdout(), app.Manager.Sessions(), app.Manager.ActiveSessionID())
			})
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return newSessionCmd(opts, "show", "Print a game's board", cobra.NoArgs,
		func(context.Context, *application.App, []string) error { return nil },
	)
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	cmd := newSessionCmd(opts, "move <cell>", "Place the next mark on a cell", cobra.ExactArgs(1),
		func(ctx context.Context, app *application.App, args []string) error {
			cell, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid cell %q: %w", args[0], err)
			}

			return app.Manager.ApplyMove(ctx, cell)
		},
	)
	cmd.Long = "Cells are numbered row by row from 0. Moves on a finished game or an occupied cell are ignored."

	return cmd
}

func newUndoCmd(opts *rootOptions) *cobra.Command {
	return newSessionCmd(opts, "undo", "Step back one move", cobra.NoArgs,
		func(ctx context.Context, app *application.App, _ []string) error {
			return app.Manager.Undo(ctx)
		},
	)
}

func newRedoCmd(opts *rootOptions) *cobra.Command {
	return newSessionCmd(opts, "redo", "Step forward one move", cobra.NoArgs,
		func(ctx context.Context, app *application.App, _ []string) error {
			return app.Manager.Redo(ctx)
		},
	)
}

func newJumpCmd(opts *rootOptions) *cobra.Command {
	return newSessionCmd(opts, "jump <move>", "Jump to a move in the history (0 is the empty board)", cobra.ExactArgs(1),
		func(ctx context.Context, app *application.App, args []string) error {
			move, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid move %q: %w", args[0], err)
			}

			return app.Manager.JumpTo(ctx, move)
		},
	)
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return newSessionCmd(opts, "reset", "Clear a game's board and history", cobra.NoArgs,
		func(ctx context.Context, app *application.App, _ []string) error {
			return app.Manager.ResetSession(ctx)
		},
	)
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *application.App) error {
				return app.Manager.DeleteSession(cmd.Context(), args[0])
			})
		},
	}
}

// newSessionCmd - builds a command that loads --session, runs action and prints the resulting board.
func newSessionCmd(
	opts *rootOptions,
	use, short string,
	args cobra.PositionalArgs,
	action func(ctx context.Context, app *application.App, args []string) error,
) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, sessionID, func(app *application.App) error {
				if err := action(cmd.Context(), app, args); err != nil {
					return err
				}

				renderBoard(cmd.OutOrStdout(), app.Manager.ActiveSession())

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Id of the game to act on")

	return cmd
}
