package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/ADS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек расписания
// Настройки хранятся одной строкой в таблице scheduling_settings
// и могут меняться администратором без перезапуска сервиса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetMinAdvanceHours возвращает минимальное время до начала занятия при бронировании
// Если строка настроек отсутствует, возвращает ErrSettingsNotFound -
// вызывающая сторона подставляет значение из конфигурации
func (r *Repository) GetMinAdvanceHours(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("min_advance_hours").
		From("scheduling_settings").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetMinAdvanceHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&hours)
	if err == sql.ErrNoRows {
		return 0, ErrSettingsNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetMinAdvanceHours - scan setting: %v", ErrScanRow, err)
	}

	return hours, nil
}

