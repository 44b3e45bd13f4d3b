package pgdb

import (
	"context"
	"errors"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/repository/pgdb/converter"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// UserRepo реализует хранилище пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

func (u *UserRepo) Create(ctx context.Context, user *domain.User, passwordHash, salt string) error {
	db := pickQuerier(ctx, u.pool)

	query := `
		INSERT INTO users (username, name, surname, role, password_hash, salt)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := db.Exec(ctx, query, user.Username, user.Name, user.Surname, string(user.Role), passwordHash, salt)
	if err != nil {
		if postgresDuplicate(err) {
			return e.ErrUserAlreadyExists
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (u *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db := pickQuerier(ctx, u.pool)

	query := `SELECT username, name, surname, role FROM users WHERE username = $1`

	var model converter.UserModel
	err := db.QueryRow(ctx, query, username).
		Scan(&model.Username, &model.Name, &model.Surname, &model.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrUserNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

func (u *UserRepo) GetCredentials(ctx context.Context, username string) (string, string, error) {
	db := pickQuerier(ctx, u.pool)

	query := `SELECT password_hash, salt FROM users WHERE username = $1`

	var hash, salt string
	err := db.QueryRow(ctx, query, username).Scan(&hash, &salt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", e.ErrUserNotFound
		}
		return "", "", e.Wrap(whereami.WhereAmI(), err)
	}

	return hash, salt, nil
}

func (u *UserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	db := pickQuerier(ctx, u.pool)

	query := `SELECT username, name, surname, role FROM users ORDER BY username`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.User, 0)
	for rows.Next() {
		var model converter.UserModel
		if err := rows.Scan(&model.Username, &model.Name, &model.Surname, &model.Role); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *u.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (u *UserRepo) Delete(ctx context.Context, username string) error {
	db := pickQuerier(ctx, u.pool)

	res, err := db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.RowsAffected() == 0 {
		return e.ErrUserNotFound
	}

	return nil
}
