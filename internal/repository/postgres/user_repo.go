package postgres

import (
	"context"
	"database/sql"
	"errors"

	"review-rotation-service/internal/lib"
	"review-rotation-service/internal/models"
	repo "review-rotation-service/internal/repository"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
)

type UserRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewUserRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *UserRepo {
	return &UserRepo{
		db:     db,
		getter: c,
	}
}

func (r *UserRepo) Save(ctx context.Context, user *models.User) error {
	const op = "user_repo.Save"

	query := `
        INSERT INTO users (user_id, username, team_name, is_active)
        VALUES ($1, $2, NULLIF($3, ''), $4)
        ON CONFLICT (user_id)
        DO UPDATE SET
            username  = EXCLUDED.username,
            team_name = EXCLUDED.team_name,
            is_active = EXCLUDED.is_active
    `

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(
		ctx,
		query,
		user.UserID,
		user.Username,
		user.TeamName,
		user.IsActive,
	)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	const op = "user_repo.GetById"

	query := `
        SELECT user_id, username, COALESCE(team_name, '') AS team_name, is_active
        FROM users
        WHERE user_id = $1
    `

	var user models.User
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &user, nil
}

func (r *UserRepo) SetIsActive(ctx context.Context, userID string, isActive bool) error {
	const op = "user_repo.SetIsActive"

	query := `
        UPDATE users
        SET is_active = $2
        WHERE user_id = $1
    `

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, userID, isActive)
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

func (r *UserRepo) GetUsersInTeam(ctx context.Context, teamName string) ([]*models.User, error) {
	const op = "user_repo.GetUsersInTeam"

	query := `
        SELECT user_id, username, COALESCE(team_name, '') AS team_name, is_active
        FROM users
        WHERE team_name = $1
        ORDER BY user_id
    `

	var users []*models.User
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &users, query, teamName)
	if err != nil {
		return nil, lib.Err(op, err)
	}

	return users, nil
}

func (r *UserRepo) SetTeamMembersActive(ctx context.Context, teamName string, isActive bool) (int64, error) {
	const op = "user_repo.SetTeamMembersActive"

	query := `
        UPDATE users
        SET is_active = $2
        WHERE team_name = $1 AND is_active <> $2
    `

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamName, isActive)
	if err != nil {
		return 0, lib.Err(op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, lib.Err(op, err)
	}

	return rowsAffected, nil
}

// GetActiveUsersInTeam returns eligible reviewer ids: both the user flag and
// the team flag must be set. Ordered by id to keep selection deterministic.
func (r *UserRepo) GetActiveUsersInTeam(ctx context.Context, teamName string) ([]string, error) {
	const op = "user_repo.GetActiveUsersInTeam"

	query := `
        SELECT u.user_id
        FROM users u
        JOIN teams t ON t.name = u.team_name
        WHERE u.team_name = $1 AND u.is_active AND t.is_active
        ORDER BY u.user_id
    `

	var userIDs []string
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &userIDs, query, teamName)
	if err != nil {
		return nil, lib.Err(op, err)
	}

	return userIDs, nil
}
