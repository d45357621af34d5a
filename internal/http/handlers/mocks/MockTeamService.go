package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	api "review-rotation-service/internal/http/api"
)

type MockTeamService struct {
	mock.Mock
}

func NewMockTeamService(t *testing.T) *MockTeamService {
	m := &MockTeamService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTeamService) Add(ctx context.Context, teamName string, users []api.TeamMember) (*api.TeamSchema, error) {
	args := m.Called(ctx, teamName, users)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TeamSchema), args.Error(1)
}

func (m *MockTeamService) Get(ctx context.Context, teamName string) (*api.TeamSchema, error) {
	args := m.Called(ctx, teamName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TeamSchema), args.Error(1)
}

func (m *MockTeamService) Deactivate(ctx context.Context, teamName string) (*api.TeamSchema, error) {
	args := m.Called(ctx, teamName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TeamSchema), args.Error(1)
}
