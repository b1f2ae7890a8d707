// Package tui is the terminal front end: a board, the saved sessions list and
// the new-game prompt, all driven by a session manager.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/tictactoe"
)

type sessionManager interface {
	CreateSession(ctx context.Context, size int, nameX, nameO string) (*entity.Session, error)
	LoadSession(ctx context.Context, id string) error
	ApplyMove(ctx context.Context, cell int) error
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
	JumpTo(ctx context.Context, move int) error
	ResetSession(ctx context.Context) error
	DeleteSession(ctx context.Context, id string) error

	Sessions() []*entity.Session
	ActiveSession() *entity.Session
	ActiveSessionID() string
	BoardSize() int
	History() []entity.Board
	CurrentMove() int
	CurrentBoard() entity.Board
	NextMark() string
	Outcome() tictactoe.Outcome
	CanUndo() bool
	CanRedo() bool
}

type focus int

const (
	focusBoard focus = iota
	focusSessions
)

type mode int

const (
	modePlay mode = iota
	modeSizePicker
	modeNames
)

const nameCharLimit = 24

type Model struct {
	ctx     context.Context
	logger  *slog.Logger
	manager sessionManager

	globalKeys  map[string]func() tea.Cmd
	boardKeys   map[string]func() tea.Cmd
	sessionKeys map[string]func() tea.Cmd

	focus    focus
	mode     mode
	cursor   int
	selected int

	pendingSize int
	nameInputs  [2]textinput.Model
	nameFocus   int

	flash string
	width int
}

func New(ctx context.Context, logger *slog.Logger, manager sessionManager) *Model {
	model := &Model{
		ctx:     ctx,
		logger:  logger.With("component", "tui"),
		manager: manager,
	}

	model.globalKeys = map[string]func() tea.Cmd{
		"q":    func() tea.Cmd { return tea.Quit },
		"n":    model.openSizePicker,
		"tab":  model.toggleFocus,
		"u":    model.run(manager.Undo),
		"r":    model.run(manager.Redo),
		"x":    model.run(manager.ResetSession),
		"home": model.jumpToStart,
		"g":    model.jumpToStart,
		"end":  model.jumpToEnd,
		"G":    model.jumpToEnd,
	}

	model.boardKeys = map[string]func() tea.Cmd{
		"up":    model.moveCursor(-1, 0),
		"k":     model.moveCursor(-1, 0),
		"down":  model.moveCursor(1, 0),
		"j":     model.moveCursor(1, 0),
		"left":  model.moveCursor(0, -1),
		"h":     model.moveCursor(0, -1),
		"right": model.moveCursor(0, 1),
		"l":     model.moveCursor(0, 1),
		"enter": model.play,
		"space": model.play,
		" ":     model.play,
	}

	model.sessionKeys = map[string]func() tea.Cmd{
		"up":    model.moveSelection(-1),
		"k":     model.moveSelection(-1),
		"down":  model.moveSelection(1),
		"j":     model.moveSelection(1),
		"enter": model.loadSelected,
		"d":     model.deleteSelected,
	}

	for i := range model.nameInputs {
		input := textinput.New()
		input.CharLimit = nameCharLimit
		model.nameInputs[i] = input
	}
	model.nameInputs[0].Placeholder = entity.DefaultPlayerXName
	model.nameInputs[1].Placeholder = entity.DefaultPlayerOName

	return model
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	if m.mode == modeNames {
		var cmd tea.Cmd
		m.nameInputs[m.nameFocus], cmd = m.nameInputs[m.nameFocus].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	switch m.mode {
	case modeSizePicker:
		return m.handleSizePickerKey(key)
	case modeNames:
		return m.handleNamesKey(key, msg)
	}

	m.flash = ""

	keys := m.boardKeys
	if m.focus == focusSessions {
		keys = m.sessionKeys
	}

	if handler, ok := keys[key]; ok {
		return handler()
	}

	if handler, ok := m.globalKeys[key]; ok {
		return handler()
	}

	return nil
}

func (m *Model) handleSizePickerKey(key string) tea.Cmd {
	switch key {
	case "3", "4", "5":
		m.pendingSize = int(key[0] - '0')
		m.mode = modeNames
		m.nameFocus = 0
		for i := range m.nameInputs {
			m.nameInputs[i].SetValue("")
			m.nameInputs[i].Blur()
		}
		return m.nameInputs[0].Focus()
	case "esc", "q":
		m.mode = modePlay
	}

	return nil
}

func (m *Model) handleNamesKey(key string, msg tea.KeyPressMsg) tea.Cmd {
	switch key {
	case "esc":
		m.mode = modePlay
		m.flash = ""
		return nil
	case "tab", "down", "up", "shift+tab":
		m.nameInputs[m.nameFocus].Blur()
		m.nameFocus = 1 - m.nameFocus
		return m.nameInputs[m.nameFocus].Focus()
	case "enter":
		return m.createSession()
	}

	var cmd tea.Cmd
	m.nameInputs[m.nameFocus], cmd = m.nameInputs[m.nameFocus].Update(msg)

	return cmd
}

func (m *Model) createSession() tea.Cmd {
	log := m.logger.With("method", "createSession")

	_, err := m.manager.CreateSession(m.ctx, m.pendingSize, m.nameInputs[0].Value(), m.nameInputs[1].Value())

	switch {
	case errors.Is(err, apperror.ErrPlayerNamesRequired):
		m.flash = "Enter a name for at least one player"
		return nil
	case errors.Is(err, apperror.ErrInvalidBoardSize):
		m.flash = "Could not create game: " + err.Error()
		m.mode = modePlay
		return nil
	case err != nil:
		// the game is created and active even though saving it failed
		log.Error("failed to save new session", "error", err)
		m.flash = "Could not save: " + err.Error()
	default:
		m.flash = ""
	}

	m.mode = modePlay
	m.focus = focusBoard
	m.cursor = 0
	m.selectSession(m.manager.ActiveSessionID())

	return nil
}

func (m *Model) openSizePicker() tea.Cmd {
	m.mode = modeSizePicker
	return nil
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusBoard {
		m.focus = focusSessions
		m.selectSession(m.manager.ActiveSessionID())
	} else {
		m.focus = focusBoard
	}

	return nil
}

// run wraps a manager operation so storage failures surface in the footer.
func (m *Model) run(operation func(ctx context.Context) error) func() tea.Cmd {
	return func() tea.Cmd {
		if err := operation(m.ctx); err != nil {
			m.logger.Error("operation failed", "error", err)
			m.flash = "Could not save: " + err.Error()
		}

		return nil
	}
}

func (m *Model) play() tea.Cmd {
	return m.run(func(ctx context.Context) error {
		return m.manager.ApplyMove(ctx, m.cursor)
	})()
}

func (m *Model) jumpToStart() tea.Cmd {
	return m.run(func(ctx context.Context) error {
		return m.manager.JumpTo(ctx, 0)
	})()
}

func (m *Model) jumpToEnd() tea.Cmd {
	return m.run(func(ctx context.Context) error {
		return m.manager.JumpTo(ctx, len(m.manager.History())-1)
	})()
}

func (m *Model) moveCursor(dRow, dCol int) func() tea.Cmd {
	return func() tea.Cmd {
		size := m.manager.BoardSize()
		row, col := m.cursor/size, m.cursor%size

		row = clamp(row+dRow, 0, size-1)
		col = clamp(col+dCol, 0, size-1)
		m.cursor = row*size + col

		return nil
	}
}

func (m *Model) moveSelection(delta int) func() tea.Cmd {
	return func() tea.Cmd {
		count := len(m.manager.Sessions())
		if count == 0 {
			m.selected = 0
			return nil
		}

		m.selected = clamp(m.selected+delta, 0, count-1)

		return nil
	}
}

func (m *Model) loadSelected() tea.Cmd {
	sessions := m.manager.Sessions()
	if m.selected >= len(sessions) {
		return nil
	}

	if err := m.manager.LoadSession(m.ctx, sessions[m.selected].ID); err != nil {
		m.flash = err.Error()
		return nil
	}

	m.focus = focusBoard
	m.cursor = clamp(m.cursor, 0, m.manager.BoardSize()*m.manager.BoardSize()-1)

	return nil
}

func (m *Model) deleteSelected() tea.Cmd {
	sessions := m.manager.Sessions()
	if m.selected >= len(sessions) {
		return nil
	}

	cmd := m.run(func(ctx context.Context) error {
		return m.manager.DeleteSession(ctx, sessions[m.selected].ID)
	})()

	m.selected = clamp(m.selected, 0, max(len(m.manager.Sessions())-1, 0))
	m.cursor = clamp(m.cursor, 0, m.manager.BoardSize()*m.manager.BoardSize()-1)

	return cmd
}

func (m *Model) selectSession(id string) {
	for i, session := range m.manager.Sessions() {
		if session.ID == id {
			m.selected = i
			return
		}
	}
}

func clamp(value, low, high int) int {
	return max(low, min(value, high))
}
