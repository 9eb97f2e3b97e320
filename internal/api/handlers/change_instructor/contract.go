package change_instructor

import (
	"context"

	"github.com/m04kA/ADS-SchedulingService/internal/service/assignments/models"
)

type AssignmentService interface {
	ChangeInstructor(ctx context.Context, req *models.ChangeInstructorRequest) (*models.AssignmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
