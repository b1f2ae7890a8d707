package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
)

// Result is a decided win: the winning mark and the cells forming the line.
type Result struct {
	Winner string
	Line   []int
}

// Outcome is the full state of a board. Winner is entity.PlayerTie for a draw.
type Outcome struct {
	Status string
	Winner string
	Line   []int
}

func (that Outcome) IsFinished() bool {
	return that.Status == entity.StatusFinished
}

func (that Outcome) IsDraw() bool {
	return that.IsFinished() && that.Winner == entity.PlayerTie
}

// Lines - returns every candidate line of a size x size board:
// rows, then columns, then the main diagonal and the anti-diagonal.
func Lines(size int) [][]int {
	if size <= 0 {
		return nil
	}

	lines := make([][]int, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make([]int, size)
		for col := 0; col < size; col++ {
			line[col] = row*size + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make([]int, size)
		for row := 0; row < size; row++ {
			line[row] = row*size + col
		}
		lines = append(lines, line)
	}

	diagonal := make([]int, size)
	antiDiagonal := make([]int, size)
	for i := 0; i < size; i++ {
		diagonal[i] = i*size + i
		antiDiagonal[i] = i*size + (size - 1 - i)
	}

	return append(lines, diagonal, antiDiagonal)
}

// CalculateWinner - returns the first line whose cells all hold the same mark.
func CalculateWinner(board entity.Board, size int) (*Result, bool) {
	if size <= 0 || len(board) < size*size {
		return nil, false
	}

	for _, line := range Lines(size) {
		if isWinningLine(board, line) {
			return &Result{Winner: board[line[0]], Line: line}, true
		}
	}

	return nil, false
}

func isWinningLine(board entity.Board, line []int) bool {
	first := board[line[0]]
	if first == entity.EmptyCell {
		return false
	}

	for _, cell := range line[1:] {
		if board[cell] != first {
			return false
		}
	}

	return true
}

// Evaluate - derives the board state: a win, a draw once every cell is filled, or ongoing.
func Evaluate(board entity.Board, size int) Outcome {
	if result, ok := CalculateWinner(board, size); ok {
		return Outcome{
			Status: entity.StatusFinished,
			Winner: result.Winner,
			Line:   result.Line,
		}
	}

	// the game will continue until all the squares are full
	if size > 0 && len(board) >= size*size && board.IsFull() {
		return Outcome{
			Status: entity.StatusFinished,
			Winner: entity.PlayerTie,
		}
	}

	return Outcome{Status: entity.StatusOngoing}
}
