package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"
)

type ReviewerProvider struct {
	mock.Mock
}

func NewReviewerProvider(t *testing.T) *ReviewerProvider {
	m := &ReviewerProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReviewerProvider) GetReviewers(ctx context.Context, prID string) ([]string, error) {
	args := m.Called(ctx, prID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *ReviewerProvider) AssignReviewer(ctx context.Context, prID, userID string) error {
	args := m.Called(ctx, prID, userID)
	return args.Error(0)
}

func (m *ReviewerProvider) ReplaceReviewer(ctx context.Context, prID, oldUserID, newUserID string) error {
	args := m.Called(ctx, prID, oldUserID, newUserID)
	return args.Error(0)
}

func (m *ReviewerProvider) GetReviewLoads(ctx context.Context, userIDs []string) (map[string]int, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
