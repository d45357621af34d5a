package memory

import (
	"context"
	"sync"

	"review-rotation-service/internal/models"
)

// Store keeps all engine state behind one mutex. A transaction is the lock
// held for the whole read-rank-write sequence, so multi-store operations are
// serialized the same way the sql backend serializes them in a db transaction.
type Store struct {
	mu    sync.Mutex
	teams map[string]*models.Team
	users map[string]*models.User
	prs   map[string]*models.PullRequest

	// review ledger: reviewer id -> ids of OPEN PRs they are assigned to
	open map[string]map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		teams: make(map[string]*models.Team),
		users: make(map[string]*models.User),
		prs:   make(map[string]*models.PullRequest),
		open:  make(map[string]map[string]struct{}),
	}
}

type txKey struct{}

// Do implements service.TransactionManager. Nested calls run in the already
// held transaction, mirroring trm's DefaultTrOrDB behaviour.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

func (s *Store) recordAssigned(userID, prID string) {
	if s.open[userID] == nil {
		s.open[userID] = make(map[string]struct{})
	}
	s.open[userID][prID] = struct{}{}
}

func (s *Store) recordReleased(userID, prID string) {
	delete(s.open[userID], prID)
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func clonePR(pr *models.PullRequest) *models.PullRequest {
	c := *pr
	c.AssignedReviewers = append([]string(nil), pr.AssignedReviewers...)
	return &c
}
