package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ADS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий баланса часов вождения студента
// Баланс хранится в минутах на записи пользователя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория баланса
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetMinutes возвращает текущий баланс студента в минутах
func (r *Repository) GetMinutes(ctx context.Context, studentID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("driving_balance_minutes").
		From("users").
		Where(squirrel.Eq{"id": studentID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var minutes int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&minutes)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetMinutes - scan balance: %v", ErrScanRow, err)
	}

	return minutes, nil
}

// TryDebit атомарно списывает minutes с баланса студента
// Возвращает false, если средств недостаточно: проверка и списание выполняются
// одним условным UPDATE, гонка "прочитал - посчитал - записал" исключена
func (r *Repository) TryDebit(ctx context.Context, studentID int64, minutes int) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("driving_balance_minutes", squirrel.Expr("driving_balance_minutes - ?", minutes)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": studentID}).
		Where(squirrel.GtOrEq{"driving_balance_minutes": minutes}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TryDebit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: TryDebit - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TryDebit - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Credit атомарно возвращает minutes на баланс студента
func (r *Repository) Credit(ctx context.Context, studentID int64, minutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("driving_balance_minutes", squirrel.Expr("driving_balance_minutes + ?", minutes)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Credit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Credit - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Credit - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
