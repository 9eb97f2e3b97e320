package students

import "context"

// BalanceRepository интерфейс репозитория баланса студентов
type BalanceRepository interface {
	GetMinutes(ctx context.Context, studentID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
