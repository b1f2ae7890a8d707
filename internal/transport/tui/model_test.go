package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/repository"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/usecase"
)

var errDiskFull = errors.New("disk full")

type readOnlyStore struct{}

func (readOnlyStore) Get(context.Context, string) (string, error) { return "", storage.ErrKeyNotFound }
func (readOnlyStore) Set(context.Context, string, string) error   { return errDiskFull }

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

func newTestModel(t *testing.T) (*Model, *usecase.SessionManager) {
	t.Helper()

	return newTestModelWithStore(t, storage.NewMemoryStorage())
}

func newTestModelWithStore(t *testing.T, store keyValueStore) (*Model, *usecase.SessionManager) {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewSessionRepository(store, repository.DefaultSessionsKey)

	manager := usecase.NewSessionManager(logger, repo)
	require.NoError(t, manager.Init(ctx))

	return New(ctx, logger, manager), manager
}

func keyPressMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		return tea.KeyPressMsg{Code: 0, Text: key}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, key := range keys {
		_, cmd = m.Update(keyPressMsg(key))
	}

	return cmd
}

func startGame(t *testing.T, m *Model, size string, nameX, nameO string) {
	t.Helper()

	press(m, "n", size)
	require.Equal(t, modeNames, m.mode)

	m.nameInputs[0].SetValue(nameX)
	m.nameInputs[1].SetValue(nameO)
	press(m, "enter")
	require.Equal(t, modePlay, m.mode)
}

func TestModel_NewGame(t *testing.T) {
	t.Run("Creates a session after size and names", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)

		// When
		startGame(t, m, "3", "Alice", "Bob")

		// Then
		session := manager.ActiveSession()
		require.NotNil(t, session)
		assert.Equal(t, 3, session.BoardSize)
		assert.Equal(t, "Alice", session.PlayerX)
		assert.Equal(t, "Bob", session.PlayerO)
		assert.Equal(t, focusBoard, m.focus)
		assert.Contains(t, m.render(), "Alice's turn (X)")
	})

	t.Run("Both names empty keeps the prompt open", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		press(m, "n", "4")

		// When
		press(m, "enter")

		// Then
		assert.Equal(t, modeNames, m.mode)
		assert.Empty(t, manager.Sessions())
		assert.Contains(t, m.render(), "Enter a name for at least one player")
	})

	t.Run("Escape cancels the prompt", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		press(m, "n", "5")

		// When
		press(m, "esc")

		// Then
		assert.Equal(t, modePlay, m.mode)
		assert.Empty(t, manager.Sessions())
	})

	t.Run("Other keys are ignored by the size picker", func(t *testing.T) {
		// Given
		m, _ := newTestModel(t)

		// When
		press(m, "n", "7")

		// Then
		assert.Equal(t, modeSizePicker, m.mode)
		assert.Contains(t, m.render(), "Choose a board size")
	})

	t.Run("A game that could not be saved is still shown", func(t *testing.T) {
		// Given: storage that rejects writes
		m, manager := newTestModelWithStore(t, readOnlyStore{})
		press(m, "n", "3")
		m.nameInputs[0].SetValue("Alice")

		// When
		press(m, "enter")

		// Then: the new game is active and selected, and the save failure is reported
		require.NotNil(t, manager.ActiveSession())
		assert.Equal(t, modePlay, m.mode)
		assert.Equal(t, focusBoard, m.focus)
		assert.Equal(t, 0, m.selected)
		assert.Contains(t, m.render(), "Alice's turn (X)")
		assert.Contains(t, m.render(), "Could not save")
		assert.NotContains(t, m.render(), "Could not create game")
	})

	t.Run("Tab moves between the name inputs", func(t *testing.T) {
		// Given
		m, _ := newTestModel(t)
		press(m, "n", "3")

		// When
		press(m, "tab")

		// Then
		assert.Equal(t, 1, m.nameFocus)
		assert.True(t, m.nameInputs[1].Focused())
		assert.False(t, m.nameInputs[0].Focused())
	})
}

func TestModel_Board(t *testing.T) {
	t.Run("Cursor moves and places marks", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		startGame(t, m, "3", "Alice", "Bob")

		// When
		press(m, "right", "down", "enter")

		// Then
		assert.Equal(t, 4, m.cursor)
		assert.Equal(t, entity.PlayerX, manager.CurrentBoard()[4])
		assert.Equal(t, 1, manager.CurrentMove())
	})

	t.Run("Cursor stays inside the board", func(t *testing.T) {
		// Given
		m, _ := newTestModel(t)
		startGame(t, m, "3", "Alice", "Bob")

		// When
		press(m, "up", "left", "h", "k")

		// Then
		assert.Equal(t, 0, m.cursor)

		// When
		press(m, "l", "l", "l", "j", "j", "j")

		// Then
		assert.Equal(t, 8, m.cursor)
	})

	t.Run("Undo, redo and jumps drive history", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		startGame(t, m, "3", "Alice", "Bob")
		press(m, "space", "l", "space", "l", "space")
		require.Equal(t, 3, manager.CurrentMove())

		// When
		press(m, "u")

		// Then
		assert.Equal(t, 2, manager.CurrentMove())

		// When
		press(m, "r")

		// Then
		assert.Equal(t, 3, manager.CurrentMove())

		// When
		press(m, "g")

		// Then
		assert.Equal(t, 0, manager.CurrentMove())

		// When
		press(m, "G")

		// Then
		assert.Equal(t, 3, manager.CurrentMove())
	})

	t.Run("Winning line is announced", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		startGame(t, m, "3", "Alice", "Bob")

		// When
		press(m, "enter", "j", "enter", "k", "l", "enter", "j", "enter", "k", "l", "enter")

		// Then
		assert.True(t, manager.IsGameOver())
		assert.Contains(t, m.render(), "Winner: Alice (X)")
	})

	t.Run("Reset clears the board", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		startGame(t, m, "4", "Alice", "")
		press(m, "enter", "l", "enter")

		// When
		press(m, "x")

		// Then
		assert.Len(t, manager.History(), 1)
		assert.True(t, manager.CurrentBoard().IsEmpty())
		assert.Contains(t, m.render(), "Alice's turn (X)")
	})
}

func TestModel_Sessions(t *testing.T) {
	t.Run("Loads the selected session", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		startGame(t, m, "3", "Alice", "Bob")
		first := manager.ActiveSessionID()
		startGame(t, m, "5", "Carol", "Dan")

		// When
		press(m, "tab", "up", "enter")

		// Then
		assert.Equal(t, first, manager.ActiveSessionID())
		assert.Equal(t, 3, manager.BoardSize())
		assert.Equal(t, focusBoard, m.focus)
	})

	t.Run("Deletes the selected session", func(t *testing.T) {
		// Given
		m, manager := newTestModel(t)
		startGame(t, m, "3", "Alice", "Bob")

		// When
		press(m, "tab", "d")

		// Then
		assert.Empty(t, manager.Sessions())
		assert.Empty(t, manager.ActiveSessionID())
		assert.Contains(t, m.render(), "No game selected")
	})

	t.Run("Sessions saved without player names show default names", func(t *testing.T) {
		// Given: a stored session with a numeric id and no player names
		store := storage.NewMemoryStorage()
		require.NoError(t, store.Set(context.Background(), repository.DefaultSessionsKey,
			`[{"id":1700000000000,"name":"Game 1 (3x3)","boardSize":3,`+
				`"history":[[null,null,null,null,null,null,null,null,null]],"currentMove":0,`+
				`"createdAt":"2023-11-14T22:13:20.000Z","lastPlayed":"2023-11-14T22:13:20.000Z"}]`))
		m, manager := newTestModelWithStore(t, store)

		// When
		press(m, "tab", "enter")

		// Then
		assert.Equal(t, "1700000000000", manager.ActiveSessionID())
		assert.Contains(t, m.render(), "(Player X vs Player O)")
		assert.Contains(t, m.render(), "Player X's turn (X)")
	})

	t.Run("Selection is clamped to the list", func(t *testing.T) {
		// Given
		m, _ := newTestModel(t)
		startGame(t, m, "3", "Alice", "Bob")

		// When
		press(m, "tab", "down", "down", "j")

		// Then
		assert.Equal(t, 0, m.selected)
	})
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			// Given
			m, _ := newTestModel(t)

			// When
			cmd := press(m, key)

			// Then
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}
