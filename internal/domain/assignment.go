package domain

import "time"

// InstructorAssignment закрепление инструктора за студентом по категории курса
// Инвариант: не более одного активного закрепления на пару (студент, категория)
// Смена инструктора деактивирует старую запись и создаёт новую атомарно
type InstructorAssignment struct {
	ID           int64
	StudentID    int64
	InstructorID int64
	CourseType   string
	IsActive     bool

	// Reason причина смены инструктора (заполняется при переназначении)
	Reason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
