package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	models "review-rotation-service/internal/models"
)

type ReviewProvider struct {
	mock.Mock
}

func NewReviewProvider(t *testing.T) *ReviewProvider {
	m := &ReviewProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReviewProvider) GetUserReviews(ctx context.Context, userID string) ([]*models.PullRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PullRequest), args.Error(1)
}

func (m *ReviewProvider) GetReviewLoad(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
