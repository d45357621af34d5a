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
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

type TeamRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewTeamRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *TeamRepo {
	return &TeamRepo{
		db:     db,
		getter: c,
	}
}

func (r *TeamRepo) Create(ctx context.Context, teamName string) error {
	const op = "team_repo.Create"

	query := `
        INSERT INTO teams (name, is_active)
        VALUES ($1, TRUE)
    `

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamName)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == uniqueViolationCode {
			return repo.ErrTeamExists
		}
		return lib.Err(op, err)
	}

	return nil
}

func (r *TeamRepo) GetByName(ctx context.Context, teamName string) (*models.Team, error) {
	const op = "team_repo.GetByName"

	query := `
        SELECT name, is_active
        FROM teams
        WHERE name = $1
    `

	var team models.Team
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &team, query, teamName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &team, nil
}

func (r *TeamRepo) SetActive(ctx context.Context, teamName string, active bool) error {
	const op = "team_repo.SetActive"

	query := `
        UPDATE teams
        SET is_active = $2
        WHERE name = $1
    `

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamName, active)
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
