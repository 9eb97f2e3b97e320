package get_balance

import (
	"context"

	"github.com/m04kA/ADS-SchedulingService/internal/service/students/models"
)

type StudentService interface {
	GetBalance(ctx context.Context, studentID int64, userID int64) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
