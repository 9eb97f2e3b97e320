package assignment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	"github.com/m04kA/ADS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// assignmentColumns колонки таблицы instructor_assignments в порядке сканирования
var assignmentColumns = []string{
	"id",
	"student_id",
	"instructor_id",
	"course_type",
	"is_active",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий закреплений инструкторов за студентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закреплений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActive получает активное закрепление студента по категории курса
// Частичный уникальный индекс в БД гарантирует не более одной активной записи
func (r *Repository) GetActive(ctx context.Context, studentID int64, courseType string) (*domain.InstructorAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(assignmentColumns...).
		From("instructor_assignments").
		Where(squirrel.Eq{
			"student_id":  studentID,
			"course_type": courseType,
			"is_active":   true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	var a domain.InstructorAssignment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.StudentID,
		&a.InstructorID,
		&a.CourseType,
		&a.IsActive,
		&a.Reason,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan assignment: %v", ErrScanRow, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// Deactivate снимает флаг is_active с закрепления
// Возвращает количество затронутых строк: 0 означает, что активного закрепления не было
func (r *Repository) Deactivate(ctx context.Context, studentID, instructorID int64, courseType string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("instructor_assignments").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"student_id":    studentID,
			"instructor_id": instructorID,
			"course_type":   courseType,
			"is_active":     true,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CreateActive создает новое активное закрепление
// Вызывается внутри транзакции смены инструктора после Deactivate -
// частичный уникальный индекс отклонит вторую активную запись
func (r *Repository) CreateActive(ctx context.Context, studentID, instructorID int64, courseType string, reason *string) (*domain.InstructorAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("instructor_assignments").
		Columns(
			"student_id",
			"instructor_id",
			"course_type",
			"is_active",
			"reason",
		).
		Values(
			studentID,
			instructorID,
			courseType,
			true,
			reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateActive - build insert query: %v", ErrBuildQuery, err)
	}

	a := domain.InstructorAssignment{
		StudentID:    studentID,
		InstructorID: instructorID,
		CourseType:   courseType,
		IsActive:     true,
		Reason:       reason,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateActive - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
