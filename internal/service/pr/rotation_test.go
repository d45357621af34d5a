package pr

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"
	"review-rotation-service/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

func newMemoryService(t *testing.T, min, max int) (*PullRequestService, *memory.Store, *memory.PullRequestRepo) {
	t.Helper()

	store := memory.NewStore()
	prRepo := memory.NewPullRequestRepo(store)
	userRepo := memory.NewUserRepo(store)

	s := NewPullRequestService(store, prRepo, prRepo, userRepo, min, max)
	return s, store, prRepo
}

func seedTeam(t *testing.T, store *memory.Store, teamName string, userIDs ...string) {
	t.Helper()
	ctx := context.Background()

	teamRepo := memory.NewTeamRepo(store)
	userRepo := memory.NewUserRepo(store)

	require.NoError(t, teamRepo.Create(ctx, teamName))
	for _, id := range userIDs {
		require.NoError(t, userRepo.Save(ctx, &models.User{
			UserID:   id,
			Username: id,
			TeamName: teamName,
			IsActive: true,
		}))
	}
}

func TestRotation_LoadFollowsPRLifecycle(t *testing.T) {
	ctx := context.Background()
	s, store, prRepo := newMemoryService(t, 1, 1)
	seedTeam(t, store, "payments", "a", "b", "c", "d")

	// all loads zero, lowest user id wins
	first, err := s.Create(ctx, "pr-1", "First", "a")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, first.AssignedReviewers)

	// b now carries one open review, rotation moves on
	second, err := s.Create(ctx, "pr-2", "Second", "a")
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, second.AssignedReviewers)

	// b and c busy, d is the only zero-load candidate left
	reassigned, err := s.Reassign(ctx, "pr-1", "b")
	require.NoError(t, err)
	require.Equal(t, "d", reassigned.ReplacedBy)
	require.Equal(t, []string{"d"}, reassigned.PullRequest.AssignedReviewers)

	load, err := prRepo.GetReviewLoad(ctx, "b")
	require.NoError(t, err)
	require.Zero(t, load)

	// merging releases the reviewer's load
	merged, err := s.Merge(ctx, "pr-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusMerged, merged.Status)

	load, err = prRepo.GetReviewLoad(ctx, "d")
	require.NoError(t, err)
	require.Zero(t, load)

	_, err = s.Merge(ctx, "pr-1")
	require.ErrorIs(t, err, repo.ErrPRMerged)
}

func TestRotation_InactiveUsersNeverAssigned(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newMemoryService(t, 1, 2)
	seedTeam(t, store, "payments", "a", "b", "c")

	userRepo := memory.NewUserRepo(store)
	require.NoError(t, userRepo.SetIsActive(ctx, "b", false))

	resp, err := s.Create(ctx, "pr-1", "Skip the inactive", "a")
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, resp.AssignedReviewers)
}

func TestRotation_ConcurrentCreatesKeepLedgerConsistent(t *testing.T) {
	ctx := context.Background()
	s, store, prRepo := newMemoryService(t, 1, 2)

	members := []string{"u1", "u2", "u3", "u4", "u5"}
	seedTeam(t, store, "platform", members...)

	const total = 40

	errs := make(chan error, total)

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			author := members[i%len(members)]
			_, err := s.Create(ctx, fmt.Sprintf("pr-%d", i), "Concurrent change", author)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	assignedTotal := 0
	for i := 0; i < total; i++ {
		pr, err := prRepo.GetByID(ctx, fmt.Sprintf("pr-%d", i))
		require.NoError(t, err)
		require.NotEmpty(t, pr.AssignedReviewers)
		require.LessOrEqual(t, len(pr.AssignedReviewers), 2)
		require.NotContains(t, pr.AssignedReviewers, pr.AuthorID)
		assignedTotal += len(pr.AssignedReviewers)
	}

	loads, err := prRepo.GetReviewLoads(ctx, members)
	require.NoError(t, err)

	loadTotal := 0
	for _, l := range loads {
		loadTotal += l
	}
	require.Equal(t, assignedTotal, loadTotal)
}
