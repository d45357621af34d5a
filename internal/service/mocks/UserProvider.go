package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	models "review-rotation-service/internal/models"
)

type UserProvider struct {
	mock.Mock
}

func NewUserProvider(t *testing.T) *UserProvider {
	m := &UserProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserProvider) Save(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserProvider) GetUsersInTeam(ctx context.Context, teamName string) ([]*models.User, error) {
	args := m.Called(ctx, teamName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserProvider) SetTeamMembersActive(ctx context.Context, teamName string, isActive bool) (int64, error) {
	args := m.Called(ctx, teamName, isActive)
	return args.Get(0).(int64), args.Error(1)
}
