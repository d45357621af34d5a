package user

import (
	"context"
	"errors"

	"review-rotation-service/internal/http/api"
	"review-rotation-service/internal/metrics"
	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"
	"review-rotation-service/internal/service"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=UserChanger
type UserChanger interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	SetIsActive(ctx context.Context, userID string, isActive bool) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ReviewProvider
type ReviewProvider interface {
	GetUserReviews(ctx context.Context, userID string) ([]*models.PullRequest, error)
	GetReviewLoad(ctx context.Context, userID string) (int, error)
}

type UserService struct {
	trm            service.TransactionManager
	userChanger    UserChanger
	reviewProvider ReviewProvider
}

func NewUserService(
	trm service.TransactionManager,
	userChanger UserChanger,
	reviewProvider ReviewProvider,
) *UserService {
	return &UserService{
		trm:            trm,
		userChanger:    userChanger,
		reviewProvider: reviewProvider,
	}
}

// SetIsActive upserts the user: ids referenced before any team-add are
// created on the spot with the id as the default display name.
func (s *UserService) SetIsActive(ctx context.Context, userID string, isActive bool) (*api.UserSchema, error) {
	resp := &api.UserSchema{}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		user, err := s.userChanger.GetByID(ctx, userID)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			user = &models.User{
				UserID:   userID,
				Username: userID,
				IsActive: isActive,
			}
			if err := s.userChanger.Save(ctx, user); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if user.IsActive != isActive {
				if err := s.userChanger.SetIsActive(ctx, userID, isActive); err != nil {
					return err
				}
				user.IsActive = isActive
			}
		}

		resp.UserID = user.UserID
		resp.Username = user.Username
		resp.TeamName = user.TeamName
		resp.IsActive = user.IsActive
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.UserStatusChanges.WithLabelValues("setIsActive").Inc()
	return resp, nil
}

// GetReview reports the user's current review load alongside the PRs they
// are or were assigned to. Users never referenced anywhere are NotFound.
func (s *UserService) GetReview(ctx context.Context, userID string) (*api.GetReviewResponse, error) {
	resp := &api.GetReviewResponse{
		UserID:       userID,
		PullRequests: []api.PullRequestShort{},
	}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		user, err := s.userChanger.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		resp.IsActive = user.IsActive

		load, err := s.reviewProvider.GetReviewLoad(ctx, userID)
		if err != nil {
			return err
		}
		resp.CurrentLoad = load

		prs, err := s.reviewProvider.GetUserReviews(ctx, userID)
		if err != nil {
			return err
		}

		for _, pr := range prs {
			resp.PullRequests = append(resp.PullRequests, api.PullRequestShort{
				ID:       pr.ID,
				Name:     pr.Name,
				AuthorID: pr.AuthorID,
				Status:   pr.Status,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
