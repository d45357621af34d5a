package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"

	models "review-rotation-service/internal/models"
)

type PrController struct {
	mock.Mock
}

func NewPrController(t *testing.T) *PrController {
	m := &PrController{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PrController) Create(ctx context.Context, pr *models.PullRequest) error {
	args := m.Called(ctx, pr)
	return args.Error(0)
}

func (m *PrController) GetByID(ctx context.Context, prID string) (*models.PullRequest, error) {
	args := m.Called(ctx, prID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PullRequest), args.Error(1)
}

func (m *PrController) GetByIDForUpdate(ctx context.Context, prID string) (*models.PullRequest, error) {
	args := m.Called(ctx, prID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PullRequest), args.Error(1)
}

func (m *PrController) MarkMerged(ctx context.Context, prID string) error {
	args := m.Called(ctx, prID)
	return args.Error(0)
}
