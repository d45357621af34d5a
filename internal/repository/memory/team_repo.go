package memory

import (
	"context"

	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"
)

type TeamRepo struct {
	store *Store
}

func NewTeamRepo(s *Store) *TeamRepo {
	return &TeamRepo{store: s}
}

func (r *TeamRepo) Create(ctx context.Context, teamName string) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		if _, ok := r.store.teams[teamName]; ok {
			return repo.ErrTeamExists
		}

		r.store.teams[teamName] = &models.Team{
			Name:     teamName,
			IsActive: true,
		}
		return nil
	})
}

func (r *TeamRepo) GetByName(ctx context.Context, teamName string) (*models.Team, error) {
	var team *models.Team

	err := r.store.Do(ctx, func(ctx context.Context) error {
		t, ok := r.store.teams[teamName]
		if !ok {
			return repo.ErrNotFound
		}

		team = &models.Team{Name: t.Name, IsActive: t.IsActive}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *TeamRepo) SetActive(ctx context.Context, teamName string, active bool) error {
	return r.store.Do(ctx, func(ctx context.Context) error {
		t, ok := r.store.teams[teamName]
		if !ok {
			return repo.ErrNotFound
		}

		t.IsActive = active
		return nil
	})
}
