package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/ADS-SchedulingService/pkg/dbmetrics"
)

// serializationFailureCode код ошибки PostgreSQL при конфликте сериализации
const serializationFailureCode = "40001"

// maxSerializableRetries количество повторов сериализуемой транзакции при конфликте
const maxSerializableRetries = 3

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций поверх обёрнутой метриками БД
// Транзакция передается в репозитории через контекст (dbmetrics.WithTx)
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции
// При конфликте сериализации (40001) транзакция повторяется до maxSerializableRetries раз
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}

	return fmt.Errorf("txmanager: serializable transaction failed after %d attempts: %w", maxSerializableRetries, err)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенные транзакции не создаем - переиспользуем существующую
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// isSerializationFailure проверяет, является ли ошибка конфликтом сериализации PostgreSQL
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailureCode
	}
	return false
}
