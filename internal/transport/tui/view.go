package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/tictactoe"
)

const (
	sidebarWidth   = 34
	lastPlayedForm = "Jan 2 15:04"
)

func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.SetContent(m.render())

	return v
}

func (m *Model) render() string {
	header := headerStyle.Render("Tic-Tac-Toe")

	var body string
	switch m.mode {
	case modeSizePicker:
		body = m.renderSizePicker()
	case modeNames:
		body = m.renderNames()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSessions(), m.renderBoardPanel())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m *Model) renderSessions() string {
	style := panelStyle
	if m.focus == focusSessions {
		style = focusedPanelStyle
	}

	lines := []string{titleStyle.Render("Sessions")}

	sessions := m.manager.Sessions()
	if len(sessions) == 0 {
		lines = append(lines, mutedStyle.Render("No saved games. Press n."))
	}

	activeID := m.manager.ActiveSessionID()
	for i, session := range sessions {
		marker := "  "
		if session.ID == activeID {
			marker = "> "
		}

		name := marker + session.Name
		if m.focus == focusSessions && i == m.selected {
			name = cursorCellStyle.Render(name)
		}

		lines = append(lines, name+sessionBadge(session))
		lines = append(lines, mutedStyle.Render(fmt.Sprintf(
			"    Moves: %d | %s", session.CurrentMove, session.LastPlayed.Format(lastPlayedForm),
		)))
	}

	return style.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func sessionBadge(session *entity.Session) string {
	outcome := tictactoe.Evaluate(session.CurrentBoard(), session.BoardSize)

	switch {
	case outcome.IsDraw():
		return " " + drawBadgeStyle.Render("draw")
	case outcome.IsFinished():
		return " " + winnerBadgeStyle.Render(outcome.Winner+" won")
	}

	return ""
}

func (m *Model) renderBoardPanel() string {
	style := panelStyle
	if m.focus == focusBoard {
		style = focusedPanelStyle
	}

	session := m.manager.ActiveSession()
	if session == nil {
		return style.Render(mutedStyle.Render("No game selected"))
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s  (%s vs %s)",
			session.Name, session.PlayerName(entity.PlayerX), session.PlayerName(entity.PlayerO),
		)),
		m.renderStatus(session),
		"",
		m.renderGrid(),
		"",
		mutedStyle.Render(fmt.Sprintf("Move %d/%d", m.manager.CurrentMove(), len(m.manager.History())-1)),
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatus(session *entity.Session) string {
	outcome := m.manager.Outcome()

	switch {
	case outcome.IsDraw():
		return drawBadgeStyle.Render("It's a Draw!")
	case outcome.IsFinished():
		return winnerBadgeStyle.Render(fmt.Sprintf("Winner: %s (%s)", session.PlayerName(outcome.Winner), outcome.Winner))
	}

	mark := m.manager.NextMark()

	return fmt.Sprintf("%s's turn (%s)", session.PlayerName(mark), mark)
}

func (m *Model) renderGrid() string {
	size := m.manager.BoardSize()
	board := m.manager.CurrentBoard()
	line := m.manager.Outcome().Line

	rows := make([]string, 0, size)
	for row := range size {
		cells := make([]string, 0, size)
		for col := range size {
			index := row*size + col

			mark := board[index]
			if mark == entity.EmptyCell {
				mark = "·"
			}

			style := cellStyle
			switch {
			case m.focus == focusBoard && index == m.cursor:
				style = cursorCellStyle
			case slices.Contains(line, index):
				style = winningCellStyle
			}

			cells = append(cells, style.Render(" "+mark+" "))
		}
		rows = append(rows, strings.Join(cells, "│"))
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderSizePicker() string {
	lines := []string{
		titleStyle.Render("New game"),
		"Choose a board size:",
		"  3) 3x3",
		"  4) 4x4",
		"  5) 5x5",
		"",
		mutedStyle.Render("esc cancel"),
	}

	return focusedPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderNames() string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("New %dx%d game", m.pendingSize, m.pendingSize)),
		"Player X: " + m.nameInputs[0].View(),
		"Player O: " + m.nameInputs[1].View(),
	}

	if m.flash != "" {
		lines = append(lines, "", errorStyle.Render(m.flash))
	}

	lines = append(lines, "", mutedStyle.Render("tab switch | enter start | esc cancel"))

	return focusedPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	help := "n new | tab focus | u undo | r redo | x reset | g/G first/last | q quit"
	if m.focus == focusSessions {
		help = "enter load | d delete | " + help
	}

	footer := mutedStyle.Render(help)
	if m.flash != "" && m.mode == modePlay {
		footer = errorStyle.Render(m.flash) + "\n" + footer
	}

	return footer
}
