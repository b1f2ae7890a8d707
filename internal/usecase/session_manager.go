package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/tictactoe"
)

// Navigation policies decide whether undo/redo still work once a game has ended.
const (
	NavigationFreeze = "freeze"
	NavigationFree   = "free"
)

type sessionRepo interface {
	Load(ctx context.Context) ([]*entity.Session, error)
	Save(ctx context.Context, sessions []*entity.Session) error
}

// SessionManager owns the session set, the active session and its move history.
// It is not safe for concurrent use; callers drive it from a single event loop.
type SessionManager struct {
	logger *slog.Logger
	repo   sessionRepo

	now        func() time.Time
	generateID func() (string, error)
	navigation string

	sessions []*entity.Session
	activeID string

	// mirror of the active session
	boardSize   int
	history     []entity.Board
	currentMove int
}

type Option func(*SessionManager)

func WithClock(now func() time.Time) Option {
	return func(that *SessionManager) {
		that.now = now
	}
}

func WithIDGenerator(generateID func() (string, error)) Option {
	return func(that *SessionManager) {
		that.generateID = generateID
	}
}

// WithNavigationPolicy - NavigationFreeze blocks undo/redo on a finished game, NavigationFree allows it.
func WithNavigationPolicy(policy string) Option {
	return func(that *SessionManager) {
		that.navigation = policy
	}
}

func NewSessionManager(logger *slog.Logger, repo sessionRepo, opts ...Option) *SessionManager {
	manager := &SessionManager{
		logger: logger,
		repo:   repo,

		now:        time.Now,
		generateID: pkg.GenerateSessionID,
		navigation: NavigationFreeze,

		sessions: []*entity.Session{},
	}

	for _, opt := range opts {
		opt(manager)
	}

	manager.resetTransient()

	return manager
}

// Init - loads the persisted session set. No session is active afterwards.
func (that *SessionManager) Init(ctx context.Context) error {
	sessions, err := that.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	that.sessions = sessions
	that.activeID = ""
	that.resetTransient()

	that.logger.Debug("sessions loaded", "count", len(sessions))

	return nil
}

// CreateSession - starts a new session with an empty board and makes it active.
func (that *SessionManager) CreateSession(ctx context.Context, size int, nameX, nameO string) (*entity.Session, error) {
	nameX, nameO = strings.TrimSpace(nameX), strings.TrimSpace(nameO)
	if nameX == "" && nameO == "" {
		return nil, apperror.ErrPlayerNamesRequired
	}

	if !entity.IsValidBoardSize(size) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	if nameX == "" {
		nameX = entity.DefaultPlayerXName
	}
	if nameO == "" {
		nameO = entity.DefaultPlayerOName
	}

	id, err := that.generateID()
	if err != nil {
		return nil, fmt.Errorf("error generating session ID: %w", err)
	}

	session := entity.NewSession(id, size, nameX, nameO, that.now())
	session.Name = entity.DefaultSessionName(len(that.sessions)+1, size)

	that.sessions = append(that.sessions, session)
	that.activate(session)

	if err = that.persist(ctx); err != nil {
		return nil, err
	}

	that.logger.Info("session created", "sessionID", id, "boardSize", size)

	return session.Clone(), nil
}

// LoadSession - makes a stored session active and marks it as played now.
func (that *SessionManager) LoadSession(ctx context.Context, id string) error {
	session := that.find(id)
	if session == nil {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	that.activate(session)

	return that.persist(ctx)
}

// ApplyMove - places the next mark on cell. Finished games, occupied or
// out-of-range cells and a missing active session are ignored.
func (that *SessionManager) ApplyMove(ctx context.Context, cell int) error {
	if that.activeID == "" {
		return nil
	}

	board := that.history[that.currentMove]
	if cell < 0 || cell >= len(board) || board[cell] != entity.EmptyCell {
		return nil
	}

	if that.Outcome().IsFinished() {
		return nil
	}

	mark := entity.MarkForMove(that.currentMove)

	// moving from an earlier point discards the undone future
	end := that.currentMove + 1
	that.history = append(that.history[:end:end], board.With(cell, mark))
	that.currentMove = len(that.history) - 1

	return that.persist(ctx)
}

func (that *SessionManager) Undo(ctx context.Context) error {
	if !that.CanUndo() {
		return nil
	}

	that.currentMove--

	return that.persist(ctx)
}

func (that *SessionManager) Redo(ctx context.Context) error {
	if !that.CanRedo() {
		return nil
	}

	that.currentMove++

	return that.persist(ctx)
}

// JumpTo - moves the history pointer to any recorded move.
func (that *SessionManager) JumpTo(ctx context.Context, move int) error {
	if that.activeID == "" || move < 0 || move >= len(that.history) || move == that.currentMove {
		return nil
	}

	that.currentMove = move

	return that.persist(ctx)
}

// ResetSession - clears the active session's history back to an empty board.
func (that *SessionManager) ResetSession(ctx context.Context) error {
	if that.activeID == "" {
		return nil
	}

	that.history = []entity.Board{entity.NewBoard(that.boardSize)}
	that.currentMove = 0

	return that.persist(ctx)
}

// DeleteSession - removes a session. Deleting the active one leaves no session
// active and a default empty board.
func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	log := that.logger.With("method", "DeleteSession", "sessionID", id)

	index := -1
	for i, session := range that.sessions {
		if session.ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		return nil
	}

	that.sessions = append(that.sessions[:index], that.sessions[index+1:]...)

	if that.activeID == id {
		that.activeID = ""
		that.resetTransient()
	}

	// the remaining sessions are untouched, so none of them is marked as played
	if err := that.save(ctx); err != nil {
		return err
	}

	log.Info("session deleted")

	return nil
}

func (that *SessionManager) Sessions() []*entity.Session {
	sessions := make([]*entity.Session, len(that.sessions))
	for i, session := range that.sessions {
		sessions[i] = session.Clone()
	}

	return sessions
}

// ActiveSession returns nil when no session is active.
func (that *SessionManager) ActiveSession() *entity.Session {
	session := that.find(that.activeID)
	if session == nil {
		return nil
	}

	return session.Clone()
}

func (that *SessionManager) ActiveSessionID() string {
	return that.activeID
}

func (that *SessionManager) BoardSize() int {
	return that.boardSize
}

func (that *SessionManager) History() []entity.Board {
	history := make([]entity.Board, len(that.history))
	for i, board := range that.history {
		history[i] = board.Clone()
	}

	return history
}

func (that *SessionManager) CurrentMove() int {
	return that.currentMove
}

func (that *SessionManager) CurrentBoard() entity.Board {
	return that.history[that.currentMove].Clone()
}

func (that *SessionManager) XIsNext() bool {
	return that.NextMark() == entity.PlayerX
}

// NextMark - the mark the next move places.
func (that *SessionManager) NextMark() string {
	return entity.MarkForMove(that.currentMove)
}

func (that *SessionManager) Outcome() tictactoe.Outcome {
	return tictactoe.Evaluate(that.history[that.currentMove], that.boardSize)
}

func (that *SessionManager) IsGameOver() bool {
	return that.Outcome().IsFinished()
}

func (that *SessionManager) CanUndo() bool {
	return that.activeID != "" && that.currentMove > 0 && that.navigable()
}

func (that *SessionManager) CanRedo() bool {
	return that.activeID != "" && that.currentMove < len(that.history)-1 && that.navigable()
}

func (that *SessionManager) navigable() bool {
	return that.navigation == NavigationFree || !that.IsGameOver()
}

func (that *SessionManager) find(id string) *entity.Session {
	if id == "" {
		return nil
	}

	for _, session := range that.sessions {
		if session.ID == id {
			return session
		}
	}

	return nil
}

func (that *SessionManager) activate(session *entity.Session) {
	that.activeID = session.ID
	that.boardSize = session.BoardSize
	that.history = session.Clone().History
	that.currentMove = session.CurrentMove
}

func (that *SessionManager) resetTransient() {
	that.boardSize = entity.DefaultBoardSize
	that.history = []entity.Board{entity.NewBoard(entity.DefaultBoardSize)}
	that.currentMove = 0
}

// persist - copies the transient state into the active session, refreshes its
// lastPlayed and writes the whole set.
func (that *SessionManager) persist(ctx context.Context) error {
	if session := that.find(that.activeID); session != nil {
		session.BoardSize = that.boardSize
		session.History = that.History()
		session.CurrentMove = that.currentMove
		session.LastPlayed = that.now()
	}

	return that.save(ctx)
}

func (that *SessionManager) save(ctx context.Context) error {
	if err := that.repo.Save(ctx, that.sessions); err != nil {
		that.logger.Error("failed to save sessions", "error", err)
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	return nil
}
