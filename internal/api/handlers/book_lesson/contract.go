package book_lesson

import (
	"context"

	bookLesson "github.com/m04kA/ADS-SchedulingService/internal/usecase/book_lesson"
)

type BookLessonUseCase interface {
	Execute(ctx context.Context, req *bookLesson.Request) (*bookLesson.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
