package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"
)

type PullRequestRepo struct {
	store *Store
}

func NewPullRequestRepo(s *Store) *PullRequestRepo {
	return &PullRequestRepo{store: s}
}

func (r *PullRequestRepo) Create(ctx context.Context, pr *models.PullRequest) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		if _, ok := r.store.prs[pr.ID]; ok {
			return repo.ErrPRExists
		}

		now := time.Now()
		stored := clonePR(pr)
		stored.Status = models.StatusOpen
		stored.CreatedAt = &now
		stored.AssignedReviewers = nil

		r.store.prs[pr.ID] = stored
		pr.Status = stored.Status
		pr.CreatedAt = stored.CreatedAt
		return nil
	})
}

func (r *PullRequestRepo) GetByID(ctx context.Context, prID string) (*models.PullRequest, error) {
	var pr *models.PullRequest

	err := r.store.Do(ctx, func(ctx context.Context) error {
		stored, ok := r.store.prs[prID]
		if !ok {
			return repo.ErrNotFound
		}

		pr = clonePR(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pr, nil
}

// GetByIDForUpdate matches the sql backend's locking read. The store mutex
// already serializes whole transactions, so no extra locking is needed here.
func (r *PullRequestRepo) GetByIDForUpdate(ctx context.Context, prID string) (*models.PullRequest, error) {
	return r.GetByID(ctx, prID)
}

// MarkMerged flips the PR to MERGED and releases every reviewer's ledger
// entry in the same critical section. The reviewer set stays on the PR.
func (r *PullRequestRepo) MarkMerged(ctx context.Context, prID string) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		pr, ok := r.store.prs[prID]
		if !ok {
			return repo.ErrNotFound
		}
		if pr.Status == models.StatusMerged {
			return nil
		}

		now := time.Now()
		pr.Status = models.StatusMerged
		pr.MergedAt = &now

		for _, reviewerID := range pr.AssignedReviewers {
			r.store.recordReleased(reviewerID, prID)
		}
		return nil
	})
}

func (r *PullRequestRepo) AssignReviewer(ctx context.Context, prID, userID string) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		pr, ok := r.store.prs[prID]
		if !ok {
			return repo.ErrNotFound
		}
		if slices.Contains(pr.AssignedReviewers, userID) {
			return nil
		}

		pr.AssignedReviewers = append(pr.AssignedReviewers, userID)
		if pr.Status == models.StatusOpen {
			r.store.recordAssigned(userID, prID)
		}
		return nil
	})
}

// ReplaceReviewer swaps old for new in place, keeping the reviewer-set size
// and order, and moves the ledger entry in the same step.
func (r *PullRequestRepo) ReplaceReviewer(ctx context.Context, prID, oldUserID, newUserID string) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		pr, ok := r.store.prs[prID]
		if !ok {
			return repo.ErrNotFound
		}

		i := slices.Index(pr.AssignedReviewers, oldUserID)
		if i < 0 {
			return repo.ErrNotAssigned
		}

		pr.AssignedReviewers[i] = newUserID
		r.store.recordReleased(oldUserID, prID)
		if pr.Status == models.StatusOpen {
			r.store.recordAssigned(newUserID, prID)
		}
		return nil
	})
}

func (r *PullRequestRepo) GetReviewers(ctx context.Context, prID string) ([]string, error) {
	var reviewers []string

	err := r.store.Do(ctx, func(ctx context.Context) error {
		pr, ok := r.store.prs[prID]
		if !ok {
			return repo.ErrNotFound
		}

		reviewers = append([]string(nil), pr.AssignedReviewers...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewers, nil
}

func (r *PullRequestRepo) GetUserReviews(ctx context.Context, userID string) ([]*models.PullRequest, error) {
	var prs []*models.PullRequest

	err := r.store.Do(ctx, func(ctx context.Context) error {
		for _, pr := range r.store.prs {
			if slices.Contains(pr.AssignedReviewers, userID) {
				prs = append(prs, clonePR(pr))
			}
		}

		sort.Slice(prs, func(i, j int) bool { return prs[i].ID < prs[j].ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prs, nil
}

func (r *PullRequestRepo) GetReviewLoad(ctx context.Context, userID string) (int, error) {
	var load int

	err := r.store.Do(ctx, func(ctx context.Context) error {
		load = len(r.store.open[userID])
		return nil
	})
	if err != nil {
		return 0, err
	}
	return load, nil
}

func (r *PullRequestRepo) GetReviewLoads(ctx context.Context, userIDs []string) (map[string]int, error) {
	loads := make(map[string]int, len(userIDs))

	err := r.store.Do(ctx, func(ctx context.Context) error {
		for _, id := range userIDs {
			loads[id] = len(r.store.open[id])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loads, nil
}
