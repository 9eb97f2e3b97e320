package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	"github.com/m04kA/ADS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-SchedulingService/pkg/psqlbuilder"
)

// slotColumns колонки таблицы availability_slots в порядке сканирования
var slotColumns = []string{
	"id",
	"instructor_id",
	"slot_date",
	"start_time",
	"end_time",
	"is_booked",
	"license_types",
	"is_recurring",
	"recurrence_pattern",
	"days_of_week",
	"recurrence_end_date",
	"created_at",
	"updated_at",
}

// Filter параметры выборки слотов доступности
type Filter struct {
	InstructorID *int64
	LicenseType  *string    // Слот должен поддерживать категорию
	DateFrom     *time.Time // Включительно
	DateTo       *time.Time // Включительно
	OnlyUnbooked bool
	OnlyDated    bool // Исключить нераскрытые повторяющиеся шаблоны (slot_date IS NULL)
}

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот доступности
func (r *Repository) Create(ctx context.Context, s *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns(
			"instructor_id",
			"slot_date",
			"start_time",
			"end_time",
			"is_booked",
			"license_types",
			"is_recurring",
			"recurrence_pattern",
			"days_of_week",
			"recurrence_end_date",
		).
		Values(
			s.InstructorID,
			s.SlotDate,
			s.StartTime,
			s.EndTime,
			s.IsBooked,
			pq.Array(s.LicenseTypes),
			s.IsRecurring,
			s.RecurrencePattern,
			pq.Array(s.DaysOfWeek),
			s.RecurrenceEndDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// CreateBatch создает несколько слотов одним вызовом
// Используется аллокатором для остаточных слотов внутри транзакции бронирования
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.AvailabilitySlot) error {
	for _, s := range slots {
		if _, err := r.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// GetByID получает слот по ID
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlotRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает слоты по фильтру, отсортированные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("availability_slots")

	if filter.InstructorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instructor_id": *filter.InstructorID})
	}
	if filter.LicenseType != nil {
		selectBuilder = selectBuilder.Where("license_types @> ?", pq.Array([]string{*filter.LicenseType}))
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.DateTo})
	}
	if filter.OnlyUnbooked {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_booked": false})
	}
	if filter.OnlyDated {
		selectBuilder = selectBuilder.Where("slot_date IS NOT NULL")
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC", "start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// TryReserve атомарно помечает слот занятым
// Возвращает false, если слот уже занят (или не существует) - это защита от double-booking:
// проверка и установка is_booked выполняются одним условным UPDATE
func (r *Repository) TryReserve(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("is_booked", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_booked": false}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TryReserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: TryReserve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TryReserve - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Release снимает флаг is_booked со слота
// Используется при отмене занятия и отказе инструктора
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("is_booked", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
// Забронированный слот удалить нельзя - он является якорем для занятия
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"id": id, "is_booked": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо слота нет, либо он забронирован - уточняем
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrSlotNotDeletable
	}

	return nil
}

// scanSlotRow сканирует одну строку результата в слот
func (r *Repository) scanSlotRow(row *sql.Row) (*domain.AvailabilitySlot, error) {
	var s domain.AvailabilitySlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.InstructorID,
		&s.SlotDate,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
		pq.Array(&s.LicenseTypes),
		&s.IsRecurring,
		&s.RecurrencePattern,
		pq.Array(&s.DaysOfWeek),
		&s.RecurrenceEndDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		var s domain.AvailabilitySlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.InstructorID,
			&s.SlotDate,
			&s.StartTime,
			&s.EndTime,
			&s.IsBooked,
			pq.Array(&s.LicenseTypes),
			&s.IsRecurring,
			&s.RecurrencePattern,
			pq.Array(&s.DaysOfWeek),
			&s.RecurrenceEndDate,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
