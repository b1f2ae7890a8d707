package apperror

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrPlayerNamesRequired = errors.New("at least one player name is required")
	ErrInvalidBoardSize    = errors.New("board size must be between 3 and 5")
)
