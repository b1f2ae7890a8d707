package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Session is one saved game: its players, board size and full move history.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	BoardSize   int       `json:"boardSize,omitempty"`
	PlayerX     string    `json:"playerX,omitempty"`
	PlayerO     string    `json:"playerO,omitempty"`
	History     []Board   `json:"history"`
	CurrentMove int       `json:"currentMove"`
	CreatedAt   time.Time `json:"createdAt"`
	LastPlayed  time.Time `json:"lastPlayed"`
}

func NewSession(id string, size int, playerX, playerO string, now time.Time) *Session {
	return &Session{
		ID:          id,
		BoardSize:   size,
		PlayerX:     playerX,
		PlayerO:     playerO,
		History:     []Board{NewBoard(size)},
		CurrentMove: 0,
		CreatedAt:   now,
		LastPlayed:  now,
	}
}

// DefaultSessionName names a session the way the sessions list numbers them.
func DefaultSessionName(ordinal, size int) string {
	return fmt.Sprintf("Game %d (%dx%d)", ordinal, size, size)
}

func (that *Session) CurrentBoard() Board {
	return that.History[that.CurrentMove]
}

// XIsNext - X moves on even plies.
func (that *Session) XIsNext() bool {
	return that.NextMark() == PlayerX
}

func (that *Session) NextMark() string {
	return MarkForMove(that.CurrentMove)
}

// UnmarshalJSON accepts the id as a string or as the millisecond timestamp
// number older clients wrote, and keeps it as a decimal string.
func (that *Session) UnmarshalJSON(data []byte) error {
	type Alias Session

	record := struct {
		ID json.RawMessage `json:"id"`
		*Alias
	}{Alias: (*Alias)(that)}

	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	id := bytes.TrimSpace(record.ID)

	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		that.ID = ""
	case id[0] == '"':
		if err := json.Unmarshal(id, &that.ID); err != nil {
			return fmt.Errorf("invalid session id: %w", err)
		}
	default:
		var number json.Number
		if err := json.Unmarshal(id, &number); err != nil {
			return fmt.Errorf("invalid session id: %w", err)
		}

		that.ID = number.String()
	}

	return nil
}

// Normalize fills in defaults for sessions persisted by older clients. Sessions
// without a board size are 4x4. History is cut at the first board of the wrong
// size, a history that does not start from an empty board is restarted, and
// the pointer is clamped, so reads never index past history.
func (that *Session) Normalize() {
	if that.BoardSize <= 0 {
		that.BoardSize = DefaultBoardSize
	}

	cells := that.BoardSize * that.BoardSize

	if len(that.History) > 0 && !that.History[0].IsEmpty() {
		that.History = nil
	}

	end := 0
	for end < len(that.History) && len(that.History[end]) == cells {
		end++
	}
	that.History = that.History[:end]

	if len(that.History) == 0 {
		that.History = []Board{NewBoard(that.BoardSize)}
	}

	switch {
	case that.CurrentMove < 0:
		that.CurrentMove = 0
	case that.CurrentMove >= len(that.History):
		that.CurrentMove = len(that.History) - 1
	}
}

func (that *Session) Clone() *Session {
	session := *that

	session.History = make([]Board, len(that.History))
	for i, board := range that.History {
		session.History[i] = board.Clone()
	}

	return &session
}
