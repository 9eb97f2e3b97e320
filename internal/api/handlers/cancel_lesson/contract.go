package cancel_lesson

import (
	"context"

	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons/models"
)

type LessonService interface {
	Cancel(ctx context.Context, lessonID int64, req *models.CancelLessonRequest) (*models.CancelLessonResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
