package pr

import (
	"context"
	"slices"

	"review-rotation-service/internal/http/api"
	"review-rotation-service/internal/metrics"
	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"
	"review-rotation-service/internal/service"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=PrController
type PrController interface {
	Create(ctx context.Context, pr *models.PullRequest) error
	GetByID(ctx context.Context, prID string) (*models.PullRequest, error)
	// GetByIDForUpdate reads the PR holding its write lock until the
	// surrounding transaction ends, so concurrent merge and reassign on the
	// same PR serialize instead of interleaving.
	GetByIDForUpdate(ctx context.Context, prID string) (*models.PullRequest, error)
	MarkMerged(ctx context.Context, prID string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ReviewerProvider
type ReviewerProvider interface {
	GetReviewers(ctx context.Context, prID string) ([]string, error)
	AssignReviewer(ctx context.Context, prID, userID string) error
	ReplaceReviewer(ctx context.Context, prID, oldUserID, newUserID string) error
	GetReviewLoads(ctx context.Context, userIDs []string) (map[string]int, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=UserGetter
type UserGetter interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetActiveUsersInTeam(ctx context.Context, teamName string) ([]string, error)
}

type PullRequestService struct {
	trm              service.TransactionManager
	prController     PrController
	reviewerProvider ReviewerProvider
	userGetter       UserGetter

	minReviewers int
	maxReviewers int
}

func NewPullRequestService(
	trm service.TransactionManager,
	prController PrController,
	reviewerProvider ReviewerProvider,
	userGetter UserGetter,
	minReviewers, maxReviewers int,
) *PullRequestService {
	if minReviewers < 1 {
		minReviewers = 1
	}
	if maxReviewers < minReviewers {
		maxReviewers = minReviewers
	}

	return &PullRequestService{
		trm:              trm,
		prController:     prController,
		reviewerProvider: reviewerProvider,
		userGetter:       userGetter,
		minReviewers:     minReviewers,
		maxReviewers:     maxReviewers,
	}
}

// Create registers the PR and assigns up to maxReviewers active teammates of
// the author, lowest review load first. The whole read-rank-write sequence
// runs in one transaction, so concurrent creations never double count loads.
func (s *PullRequestService) Create(ctx context.Context, prID, prName, authorID string) (*api.PullRequestSchema, error) {
	pr := &models.PullRequest{
		ID:       prID,
		Name:     prName,
		AuthorID: authorID,
		Status:   models.StatusOpen,
	}

	resp := &api.PullRequestSchema{
		AssignedReviewers: make([]string, 0, s.maxReviewers),
	}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		author, err := s.userGetter.GetByID(ctx, authorID)
		if err != nil {
			return err
		}
		if author.TeamName == "" {
			return repo.ErrNoCandidate
		}

		pool, err := s.userGetter.GetActiveUsersInTeam(ctx, author.TeamName)
		if err != nil {
			return err
		}

		candidates := excludeIDs(pool, authorID)
		if len(candidates) < s.minReviewers {
			return repo.ErrNoCandidate
		}

		loads, err := s.reviewerProvider.GetReviewLoads(ctx, candidates)
		if err != nil {
			return err
		}

		reviewers := rankByLoad(candidates, loads)
		if len(reviewers) > s.maxReviewers {
			reviewers = reviewers[:s.maxReviewers]
		}

		if err := s.prController.Create(ctx, pr); err != nil {
			return err
		}

		for _, reviewerID := range reviewers {
			if err := s.reviewerProvider.AssignReviewer(ctx, pr.ID, reviewerID); err != nil {
				return err
			}
		}

		toPullRequestSchema(resp, pr, reviewers)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PRCreated.Inc()
	return resp, nil
}

// Merge is exactly-once: a second merge of the same PR fails. Flipping the
// status releases every reviewer's ledger load atomically with it.
func (s *PullRequestService) Merge(ctx context.Context, prID string) (*api.PullRequestSchema, error) {
	resp := &api.PullRequestSchema{
		AssignedReviewers: make([]string, 0, s.maxReviewers),
	}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		pr, err := s.prController.GetByIDForUpdate(ctx, prID)
		if err != nil {
			return err
		}

		if pr.Status == models.StatusMerged {
			return repo.ErrPRMerged
		}

		if err := s.prController.MarkMerged(ctx, pr.ID); err != nil {
			return err
		}

		pr, err = s.prController.GetByID(ctx, prID)
		if err != nil {
			return err
		}

		toPullRequestSchema(resp, pr, pr.AssignedReviewers)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PRMerged.Inc()
	return resp, nil
}

// Reassign replaces exactly one current reviewer with the lowest-loaded
// eligible teammate. When no candidate exists the operation fails without
// touching the PR, so the reviewer-set size never shrinks.
func (s *PullRequestService) Reassign(ctx context.Context, prID, oldUserID string) (*api.ReassignResponse, error) {
	resp := &api.ReassignResponse{
		PullRequest: api.PullRequestSchema{
			AssignedReviewers: make([]string, 0, s.maxReviewers),
		},
	}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		pr, err := s.prController.GetByIDForUpdate(ctx, prID)
		if err != nil {
			return err
		}

		if pr.Status == models.StatusMerged {
			return repo.ErrPRMerged
		}

		if _, err := s.userGetter.GetByID(ctx, oldUserID); err != nil {
			return err
		}

		if !slices.Contains(pr.AssignedReviewers, oldUserID) {
			return repo.ErrNotAssigned
		}

		author, err := s.userGetter.GetByID(ctx, pr.AuthorID)
		if err != nil {
			return err
		}

		pool, err := s.userGetter.GetActiveUsersInTeam(ctx, author.TeamName)
		if err != nil {
			return err
		}

		exclude := append([]string{pr.AuthorID}, pr.AssignedReviewers...)
		candidates := excludeIDs(pool, exclude...)
		if len(candidates) == 0 {
			return repo.ErrNoCandidate
		}

		loads, err := s.reviewerProvider.GetReviewLoads(ctx, candidates)
		if err != nil {
			return err
		}

		newReviewerID := rankByLoad(candidates, loads)[0]

		if err := s.reviewerProvider.ReplaceReviewer(ctx, prID, oldUserID, newReviewerID); err != nil {
			return err
		}

		pr, err = s.prController.GetByID(ctx, prID)
		if err != nil {
			return err
		}

		toPullRequestSchema(&resp.PullRequest, pr, pr.AssignedReviewers)
		resp.ReplacedBy = newReviewerID
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewersReassigned.Inc()
	return resp, nil
}

func toPullRequestSchema(resp *api.PullRequestSchema, pr *models.PullRequest, reviewers []string) {
	resp.ID = pr.ID
	resp.Name = pr.Name
	resp.AuthorID = pr.AuthorID
	resp.Status = pr.Status
	resp.AssignedReviewers = append(resp.AssignedReviewers, reviewers...)
	resp.CreatedAt = pr.CreatedAt
	resp.MergedAt = pr.MergedAt
}
