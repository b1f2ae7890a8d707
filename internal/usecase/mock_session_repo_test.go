package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/entity"
)

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) Load(ctx context.Context) ([]*entity.Session, error) {
	args := that.Called(ctx)

	sessions, _ := args.Get(0).([]*entity.Session)

	return sessions, args.Error(1)
}

func (that *mockSessionRepo) Save(ctx context.Context, sessions []*entity.Session) error {
	args := that.Called(ctx, sessions)

	return args.Error(0)
}

// memorySessionRepo keeps the last saved set and counts saves.
type memorySessionRepo struct {
	sessions []*entity.Session
	saves    int
}

func (that *memorySessionRepo) Load(context.Context) ([]*entity.Session, error) {
	sessions := make([]*entity.Session, len(that.sessions))
	for i, session := range that.sessions {
		sessions[i] = session.Clone()
	}

	return sessions, nil
}

func (that *memorySessionRepo) Save(_ context.Context, sessions []*entity.Session) error {
	that.sessions = make([]*entity.Session, len(sessions))
	for i, session := range sessions {
		that.sessions[i] = session.Clone()
	}
	that.saves++

	return nil
}
