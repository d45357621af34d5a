package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"review-rotation-service/internal/lib"
	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PullRequestRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewPullRequestRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *PullRequestRepo {
	return &PullRequestRepo{
		db:     db,
		getter: c,
	}
}

func (r *PullRequestRepo) Create(ctx context.Context, pr *models.PullRequest) error {
	const op = "pull_request_repo.Create"

	query := `
        INSERT INTO pull_requests (id, name, author_id, status, created_at)
        VALUES ($1, $2, $3, 'OPEN', now())
        RETURNING status, created_at
    `

	var createdAt time.Time
	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowxContext(
		ctx,
		query,
		pr.ID,
		pr.Name,
		pr.AuthorID,
	).Scan(&pr.Status, &createdAt)

	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == uniqueViolationCode {
			return repo.ErrPRExists
		}
		return lib.Err(op, err)
	}

	pr.CreatedAt = &createdAt
	return nil
}

func (r *PullRequestRepo) GetByID(ctx context.Context, prID string) (*models.PullRequest, error) {
	const op = "pull_request_repo.GetById"

	query := `
        SELECT id, name, author_id, status, created_at, merged_at
        FROM pull_requests
        WHERE id = $1
    `

	var pr models.PullRequest
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &pr, query, prID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	reviewers, err := r.GetReviewers(ctx, prID)
	if err != nil {
		return nil, err
	}
	pr.AssignedReviewers = reviewers

	return &pr, nil
}

// GetByIDForUpdate locks the PR row for the rest of the transaction. Mutating
// flows read through this so a concurrent merge and reassign of the same PR
// cannot both observe it OPEN under READ COMMITTED.
func (r *PullRequestRepo) GetByIDForUpdate(ctx context.Context, prID string) (*models.PullRequest, error) {
	const op = "pull_request_repo.GetByIdForUpdate"

	query := `
        SELECT id, name, author_id, status, created_at, merged_at
        FROM pull_requests
        WHERE id = $1
        FOR UPDATE
    `

	var pr models.PullRequest
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &pr, query, prID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	reviewers, err := r.GetReviewers(ctx, prID)
	if err != nil {
		return nil, err
	}
	pr.AssignedReviewers = reviewers

	return &pr, nil
}

func (r *PullRequestRepo) MarkMerged(ctx context.Context, prID string) error {
	const op = "pull_request_repo.MarkMerged"

	query := `
        UPDATE pull_requests
        SET status = 'MERGED', merged_at = COALESCE(merged_at, now())
        WHERE id = $1
    `

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, prID)
	if err != nil {
		return lib.Err(op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return lib.Err(op, err)
	}
	if rowsAffected == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *PullRequestRepo) AssignReviewer(ctx context.Context, prID, userID string) error {
	const op = "pull_request_repo.AssignReviewer"

	query := `
        INSERT INTO pr_reviewers (pull_request_id, reviewer_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, prID, userID)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

// ReplaceReviewer swaps the old reviewer for the new one. Both statements run
// in the transaction the service opened, so a failed insert rolls back the
// delete as well.
func (r *PullRequestRepo) ReplaceReviewer(ctx context.Context, prID, oldUserID, newUserID string) error {
	const op = "pull_request_repo.ReplaceReviewer"

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(
		ctx,
		`DELETE FROM pr_reviewers WHERE pull_request_id = $1 AND reviewer_id = $2`,
		prID, oldUserID,
	)
	if err != nil {
		return lib.Err(op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return lib.Err(op, err)
	}
	if rowsAffected == 0 {
		return repo.ErrNotAssigned
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(
		ctx,
		`INSERT INTO pr_reviewers (pull_request_id, reviewer_id) VALUES ($1, $2)`,
		prID, newUserID,
	)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

func (r *PullRequestRepo) GetReviewers(ctx context.Context, prID string) ([]string, error) {
	const op = "pull_request_repo.GetReviewers"

	query := `
        SELECT reviewer_id
        FROM pr_reviewers
        WHERE pull_request_id = $1
        ORDER BY id
    `

	var userIDs []string
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &userIDs, query, prID)
	if err != nil {
		return nil, lib.Err(op, err)
	}

	return userIDs, nil
}

func (r *PullRequestRepo) GetUserReviews(ctx context.Context, userID string) ([]*models.PullRequest, error) {
	const op = "pull_request_repo.GetUserReviews"

	query := `
        SELECT p.id, p.name, p.author_id, p.status, p.created_at, p.merged_at
        FROM pull_requests p
        JOIN pr_reviewers prr ON prr.pull_request_id = p.id
        WHERE prr.reviewer_id = $1
        ORDER BY p.id
    `

	var pullRequests []*models.PullRequest
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &pullRequests, query, userID)
	if err != nil {
		return nil, lib.Err(op, err)
	}

	return pullRequests, nil
}

// GetReviewLoad is the review-ledger read: the count of OPEN PRs the user is
// currently assigned to. Never-referenced users report zero, not an error.
func (r *PullRequestRepo) GetReviewLoad(ctx context.Context, userID string) (int, error) {
	const op = "pull_request_repo.GetReviewLoad"

	query := `
        SELECT COUNT(*)
        FROM pr_reviewers prr
        JOIN pull_requests p ON p.id = prr.pull_request_id
        WHERE prr.reviewer_id = $1 AND p.status = 'OPEN'
    `

	var load int
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &load, query, userID)
	if err != nil {
		return 0, lib.Err(op, err)
	}

	return load, nil
}

func (r *PullRequestRepo) GetReviewLoads(ctx context.Context, userIDs []string) (map[string]int, error) {
	const op = "pull_request_repo.GetReviewLoads"

	query := `
        SELECT prr.reviewer_id, COUNT(*) AS load
        FROM pr_reviewers prr
        JOIN pull_requests p ON p.id = prr.pull_request_id
        WHERE p.status = 'OPEN' AND prr.reviewer_id = ANY($1)
        GROUP BY prr.reviewer_id
    `

	rows, err := r.getter.DefaultTrOrDB(ctx, r.db).QueryxContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, lib.Err(op, err)
	}
	defer rows.Close()

	loads := make(map[string]int, len(userIDs))
	for rows.Next() {
		var (
			reviewerID string
			load       int
		)
		if err := rows.Scan(&reviewerID, &load); err != nil {
			return nil, lib.Err(op, err)
		}
		loads[reviewerID] = load
	}
	if err := rows.Err(); err != nil {
		return nil, lib.Err(op, err)
	}

	return loads, nil
}
