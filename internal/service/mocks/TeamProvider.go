package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	models "review-rotation-service/internal/models"
)

type TeamProvider struct {
	mock.Mock
}

func NewTeamProvider(t *testing.T) *TeamProvider {
	m := &TeamProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TeamProvider) Create(ctx context.Context, teamName string) error {
	args := m.Called(ctx, teamName)
	return args.Error(0)
}

func (m *TeamProvider) GetByName(ctx context.Context, teamName string) (*models.Team, error) {
	args := m.Called(ctx, teamName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *TeamProvider) SetActive(ctx context.Context, teamName string, active bool) error {
	args := m.Called(ctx, teamName, active)
	return args.Error(0)
}
