package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	models "review-rotation-service/internal/models"
)

type UserChanger struct {
	mock.Mock
}

func NewUserChanger(t *testing.T) *UserChanger {
	m := &UserChanger{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserChanger) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserChanger) Save(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserChanger) SetIsActive(ctx context.Context, userID string, isActive bool) error {
	args := m.Called(ctx, userID, isActive)
	return args.Error(0)
}
