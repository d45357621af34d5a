package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	api "review-rotation-service/internal/http/api"
)

type MockPrService struct {
	mock.Mock
}

func NewMockPrService(t *testing.T) *MockPrService {
	m := &MockPrService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPrService) Create(ctx context.Context, prID, prName, authorID string) (*api.PullRequestSchema, error) {
	args := m.Called(ctx, prID, prName, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PullRequestSchema), args.Error(1)
}

func (m *MockPrService) Merge(ctx context.Context, prID string) (*api.PullRequestSchema, error) {
	args := m.Called(ctx, prID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PullRequestSchema), args.Error(1)
}

func (m *MockPrService) Reassign(ctx context.Context, prID, oldUserID string) (*api.ReassignResponse, error) {
	args := m.Called(ctx, prID, oldUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ReassignResponse), args.Error(1)
}
