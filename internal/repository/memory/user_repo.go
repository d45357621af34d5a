package memory

import (
	"context"
	"sort"

	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"
)

type UserRepo struct {
	store *Store
}

func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{store: s}
}

// Save upserts the user, moving it between teams when TeamName changed.
func (r *UserRepo) Save(ctx context.Context, user *models.User) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		r.store.users[user.UserID] = cloneUser(user)
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user *models.User

	err := r.store.Do(ctx, func(ctx context.Context) error {
		u, ok := r.store.users[userID]
		if !ok {
			return repo.ErrNotFound
		}

		user = cloneUser(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) SetIsActive(ctx context.Context, userID string, isActive bool) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		u, ok := r.store.users[userID]
		if !ok {
			return repo.ErrNotFound
		}

		u.IsActive = isActive
		return nil
	})
}

func (r *UserRepo) GetUsersInTeam(ctx context.Context, teamName string) ([]*models.User, error) {
	var users []*models.User

	err := r.store.Do(ctx, func(ctx context.Context) error {
		for _, u := range r.store.users {
			if u.TeamName == teamName {
				users = append(users, cloneUser(u))
			}
		}

		sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetTeamMembersActive flips the flag for every member of the team and
// returns the number of users whose flag actually changed.
func (r *UserRepo) SetTeamMembersActive(ctx context.Context, teamName string, isActive bool) (int64, error) {
	var updated int64

	err := r.store.Do(ctx, func(ctx context.Context) error {
		for _, u := range r.store.users {
			if u.TeamName == teamName && u.IsActive != isActive {
				u.IsActive = isActive
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// GetActiveUsersInTeam returns ids of eligible reviewers: user flag and team
// flag must both be set. Result is sorted for deterministic selection.
func (r *UserRepo) GetActiveUsersInTeam(ctx context.Context, teamName string) ([]string, error) {
	var ids []string

	err := r.store.Do(ctx, func(ctx context.Context) error {
		t, ok := r.store.teams[teamName]
		if !ok || !t.IsActive {
			return nil
		}

		for _, u := range r.store.users {
			if u.TeamName == teamName && u.IsActive {
				ids = append(ids, u.UserID)
			}
		}

		sort.Strings(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
