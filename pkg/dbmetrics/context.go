package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс выполнения запросов
// Реализуется *sql.DB, *sql.Tx, *dbmetrics.DB и *dbmetrics.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txContextKey struct{}

// WithTx кладет активную транзакцию в контекст
// Репозитории достают её через GetExecutor и выполняют запросы внутри транзакции
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext достает транзакцию из контекста, если она есть
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txContextKey{}).(TxExecutor)
	return tx, ok
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста, если она есть,
// иначе переданный по умолчанию executor
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}
