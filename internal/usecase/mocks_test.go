package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockSessionRepo struct {
	mock.Mock
}

func newMockSessionRepo(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockSessionRepo {
	repo := &mockSessionRepo{}
	repo.Mock.Test(t)

	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	args := that.Called(ctx, session)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := that.Called(ctx, id)

	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}
