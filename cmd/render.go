package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/tictactoe"
)

const timeLayout = time.DateTime

// renderBoard - writes a session's current board with coordinates and its status line.
func renderBoard(w io.Writer, session *entity.Session) {
	board := session.CurrentBoard()
	size := session.BoardSize
	outcome := tictactoe.Evaluate(board, size)

	fmt.Fprintf(w, "%s  (%s vs %s)\n",
		session.Name, session.PlayerName(entity.PlayerX), session.PlayerName(entity.PlayerO),
	)
	fmt.Fprintf(w, "Move %d/%d\n\n", session.CurrentMove, len(session.History)-1)

	separator := strings.Repeat("-", size*5-1)
	for row := range size {
		cells := make([]string, size)
		for col := range size {
			index := row*size + col

			switch {
			case board[index] == entity.EmptyCell:
				cells[col] = fmt.Sprintf("%3d ", index)
			case slices.Contains(outcome.Line, index):
				cells[col] = fmt.Sprintf(" *%s ", board[index])
			default:
				cells[col] = fmt.Sprintf("  %s ", board[index])
			}
		}

		fmt.Fprintln(w, strings.Join(cells, "|"))
		if row < size-1 {
			fmt.Fprintln(w, separator)
		}
	}

	fmt.Fprintf(w, "\n%s\n", statusLine(session, outcome))
}

func statusLine(session *entity.Session, outcome tictactoe.Outcome) string {
	switch {
	case outcome.IsDraw():
		return "It's a Draw!"
	case outcome.IsFinished():
		return fmt.Sprintf("Winner: %s (%s)", session.PlayerName(outcome.Winner), outcome.Winner)
	}

	mark := session.NextMark()

	return fmt.Sprintf("Next: %s (%s)", session.PlayerName(mark), mark)
}

// renderSessions - writes the session list as an aligned table.
func renderSessions(w io.Writer, sessions []*entity.Session, activeID string) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No saved games.")
		return err
	}

	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "\tID\tNAME\tSIZE\tMOVES\tSTATUS\tLAST PLAYED")

	for _, session := range sessions {
		marker := ""
		if session.ID == activeID {
			marker = "*"
		}

		outcome := tictactoe.Evaluate(session.CurrentBoard(), session.BoardSize)

		status := "ongoing"
		switch {
		case outcome.IsDraw():
			status = "draw"
		case outcome.IsFinished():
			status = outcome.Winner + " won"
		}

		fmt.Fprintf(table, "%s\t%s\t%s\t%dx%d\t%d\t%s\t%s\n",
			marker, session.ID, session.Name, session.BoardSize, session.BoardSize,
			session.CurrentMove, status, session.LastPlayed.Local().Format(timeLayout),
		)
	}

	return table.Flush()
}
