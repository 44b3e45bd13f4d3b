package pgdb

import (
	"context"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/repository/pgdb/converter"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ReviewRepo реализует хранилище отзывов поверх PostgreSQL.
type ReviewRepo struct {
	pool *pgxpool.Pool
	conv converter.ReviewConverter
}

func NewReviewRepo(pool *pgxpool.Pool, conv converter.ReviewConverter) *ReviewRepo {
	return &ReviewRepo{pool: pool, conv: conv}
}

func (r *ReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	db := pickQuerier(ctx, r.pool)

	model := r.conv.ToModel(review)
	query := `
		INSERT INTO reviews (model, username, score, review_date, comment)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := db.Exec(ctx, query, model.Model, model.Username, model.Score, model.Date, model.Comment)
	if err != nil {
		if postgresDuplicate(err) {
			return e.ErrReviewAlreadyExists
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *ReviewRepo) GetByModel(ctx context.Context, model string) ([]domain.Review, error) {
	db := pickQuerier(ctx, r.pool)

	query := `
		SELECT model, username, score, review_date, comment
		FROM reviews
		WHERE model = $1
		ORDER BY review_date DESC, username
	`

	rows, err := db.Query(ctx, query, model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Review, 0)
	for rows.Next() {
		var m converter.ReviewModel
		if err := rows.Scan(&m.Model, &m.Username, &m.Score, &m.Date, &m.Comment); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *r.conv.ToEntity(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, model, username string) error {
	db := pickQuerier(ctx, r.pool)

	res, err := db.Exec(ctx, `DELETE FROM reviews WHERE model = $1 AND username = $2`, model, username)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.RowsAffected() == 0 {
		return e.ErrReviewNotFound
	}

	return nil
}

func (r *ReviewRepo) DeleteAllForModel(ctx context.Context, model string) error {
	db := pickQuerier(ctx, r.pool)

	if _, err := db.Exec(ctx, `DELETE FROM reviews WHERE model = $1`, model); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
