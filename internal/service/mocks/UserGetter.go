package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	models "review-rotation-service/internal/models"
)

type UserGetter struct {
	mock.Mock
}

func NewUserGetter(t *testing.T) *UserGetter {
	m := &UserGetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserGetter) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserGetter) GetActiveUsersInTeam(ctx context.Context, teamName string) ([]string, error) {
	args := m.Called(ctx, teamName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
