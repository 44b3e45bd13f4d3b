package pgdb

import (
	"context"
	"errors"

	"github.com/ezstore-dev/go-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier — общий срез возможностей pgx.Tx и pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pickQuerier возвращает транзакцию из контекста, если она там есть,
// иначе — пул соединений.
func pickQuerier(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}

	return pool
}

// inTx сообщает, выполняется ли запрос внутри транзакции.
func inTx(ctx context.Context) bool {
	_, err := tr.TxFromCtx(ctx)
	return err == nil
}

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func postgresCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation
}
