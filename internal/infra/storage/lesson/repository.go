package lesson

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	"github.com/m04kA/ADS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-SchedulingService/pkg/psqlbuilder"
)

// lessonColumns колонки таблицы driving_lessons в порядке сканирования
var lessonColumns = []string{
	"id",
	"student_id",
	"instructor_id",
	"availability_id",
	"lesson_date",
	"start_time",
	"end_time",
	"duration_hours",
	"status",
	"student_confirmed",
	"instructor_confirmed",
	"confirmed_at",
	"is_deducted",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
	"completed_at",
	"recap_notes",
	"meeting_point",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с занятиями по вождению
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое занятие
func (r *Repository) Create(ctx context.Context, l *domain.DrivingLesson) (*domain.DrivingLesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("driving_lessons").
		Columns(
			"student_id",
			"instructor_id",
			"availability_id",
			"lesson_date",
			"start_time",
			"end_time",
			"duration_hours",
			"status",
			"student_confirmed",
			"instructor_confirmed",
			"is_deducted",
			"meeting_point",
			"notes",
		).
		Values(
			l.StudentID,
			l.InstructorID,
			l.AvailabilityID,
			l.LessonDate,
			l.StartTime,
			l.EndTime,
			l.DurationHours,
			l.Status,
			l.StudentConfirmed,
			l.InstructorConfirmed,
			l.IsDeducted,
			l.MeetingPoint,
			l.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&l.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return l, nil
}

// GetByID получает занятие по ID
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.DrivingLesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lessonColumns...).
		From("driving_lessons").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lessons, err := r.scanLessons(rows)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, ErrLessonNotFound
	}

	return lessons[0], nil
}

// GetActiveByStudentAndDate получает активные занятия студента на дату
// Используется для проверки пересечений при бронировании
// Внутри транзакции блокирует строки (FOR UPDATE)
func (r *Repository) GetActiveByStudentAndDate(ctx context.Context, studentID int64, date time.Time) ([]*domain.DrivingLesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveLessonStatuses))
	for i, s := range domain.ActiveLessonStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(lessonColumns...).
		From("driving_lessons").
		Where(squirrel.Eq{
			"student_id":  studentID,
			"lesson_date": date,
			"status":      activeStatuses,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStudentAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStudentAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLessons(rows)
}

// GetByStudent получает историю занятий студента, опционально фильтруя по статусу
func (r *Repository) GetByStudent(ctx context.Context, studentID int64, status *domain.LessonStatus) ([]*domain.DrivingLesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lessonColumns...).
		From("driving_lessons").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("lesson_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLessons(rows)
}

// CountActiveByAvailability подсчитывает активные занятия, ссылающиеся на слот
// Инвариант: не более одного активного занятия на слот
func (r *Repository) CountActiveByAvailability(ctx context.Context, availabilityID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveLessonStatuses))
	for i, s := range domain.ActiveLessonStatuses {
		activeStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("driving_lessons").
		Where(squirrel.Eq{
			"availability_id": availabilityID,
			"status":          activeStatuses,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByAvailability - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByAvailability - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// SetInstructorConfirmed отмечает подтверждение инструктора
// Статус и confirmed_at вычисляются вызывающей стороной (переход в confirmed,
// когда подтверждены обе стороны)
func (r *Repository) SetInstructorConfirmed(ctx context.Context, id int64, status domain.LessonStatus, confirmedAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("driving_lessons").
		Set("instructor_confirmed", true).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if confirmedAt != nil {
		updateBuilder = updateBuilder.Set("confirmed_at", *confirmedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetInstructorConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetInstructorConfirmed")
}

// Cancel переводит занятие в статус cancelled со всеми отметками отмены
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy string, reason *string, isDeducted bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("driving_lessons").
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("is_deducted", isDeducted).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// Complete переводит занятие в статус completed с заметками инструктора
func (r *Repository) Complete(ctx context.Context, id int64, recapNotes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("driving_lessons").
		Set("status", domain.StatusCompleted).
		Set("recap_notes", recapNotes).
		Set("completed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Complete")
}

// execExpectingRow выполняет update и требует ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrLessonNotFound
	}

	return nil
}

// scanLessons сканирует результаты запроса в слайс занятий
func (r *Repository) scanLessons(rows *sql.Rows) ([]*domain.DrivingLesson, error) {
	lessons := make([]*domain.DrivingLesson, 0)

	for rows.Next() {
		var l domain.DrivingLesson
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&l.ID,
			&l.StudentID,
			&l.InstructorID,
			&l.AvailabilityID,
			&l.LessonDate,
			&l.StartTime,
			&l.EndTime,
			&l.DurationHours,
			&l.Status,
			&l.StudentConfirmed,
			&l.InstructorConfirmed,
			&l.ConfirmedAt,
			&l.IsDeducted,
			&l.CancelledAt,
			&l.CancelledBy,
			&l.CancellationReason,
			&l.CompletedAt,
			&l.RecapNotes,
			&l.MeetingPoint,
			&l.Notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanLessons - scan row: %v", ErrScanRow, err)
		}

		l.CreatedAt = createdAt.Time
		l.UpdatedAt = updatedAt.Time

		lessons = append(lessons, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLessons - rows error: %v", ErrScanRow, err)
	}

	return lessons, nil
}
