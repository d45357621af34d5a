package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	api "review-rotation-service/internal/http/api"
)

type MockUserService struct {
	mock.Mock
}

func NewMockUserService(t *testing.T) *MockUserService {
	m := &MockUserService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserService) SetIsActive(ctx context.Context, userID string, isActive bool) (*api.UserSchema, error) {
	args := m.Called(ctx, userID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.UserSchema), args.Error(1)
}

func (m *MockUserService) GetReview(ctx context.Context, userID string) (*api.GetReviewResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.GetReviewResponse), args.Error(1)
}
