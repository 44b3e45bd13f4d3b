package tr

import (
	"context"

	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/jackc/pgx/v5"
)

type ctxKey struct{}

// CtxKey — ключ, под которым транзакция кладётся в контекст.
var CtxKey = ctxKey{}

// WithTx кладёт транзакцию в контекст для передачи репозиториям.
// Значение принимается нетипизированным, проверка на pgx.Tx выполняется
// при извлечении в TxFromCtx.
func WithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, CtxKey, tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	txAny := ctx.Value(CtxKey)
	tx, ok := txAny.(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
