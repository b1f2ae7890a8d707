package entity

import (
	"encoding/json"
	"fmt"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

const (
	MinBoardSize     = 3
	MaxBoardSize     = 5
	DefaultBoardSize = 4
)

// Board is a row-major sequence of size*size cells. Empty cells are stored as
// null in JSON so the persisted shape matches what a browser client writes.
type Board []string

func NewBoard(size int) Board {
	return make(Board, size*size)
}

// IsValidBoardSize reports whether size is one of the playable sizes.
func IsValidBoardSize(size int) bool {
	return size >= MinBoardSize && size <= MaxBoardSize
}

func (that Board) Clone() Board {
	if that == nil {
		return nil
	}

	board := make(Board, len(that))
	copy(board, that)

	return board
}

// With returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark string) Board {
	board := that.Clone()
	board[cell] = mark

	return board
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) IsEmpty() bool {
	for _, cell := range that {
		if cell != EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) MarshalJSON() ([]byte, error) {
	cells := make([]*string, len(that))
	for i := range that {
		if that[i] != EmptyCell {
			mark := that[i]
			cells[i] = &mark
		}
	}

	return json.Marshal(cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []*string
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board := make(Board, len(cells))
	for i, cell := range cells {
		if cell != nil {
			board[i] = *cell
		}
	}

	*that = board

	return nil
}

// MarkForMove returns the mark placed on ply move: X on even plies, O on odd ones.
func MarkForMove(move int) string {
	if move%2 == 0 {
		return PlayerX
	}
	return PlayerO
}
