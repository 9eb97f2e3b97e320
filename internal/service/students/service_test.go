package students

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	balanceRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/balance"
)

type stubBalanceRepo struct {
	minutes int
	err     error
}

func (s *stubBalanceRepo) GetMinutes(_ context.Context, _ int64) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.minutes, nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func TestGetBalance_Success(t *testing.T) {
	svc := NewService(&stubBalanceRepo{minutes: 150}, &nopLogger{})

	resp, err := svc.GetBalance(context.Background(), 5, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.StudentID)
	assert.Equal(t, 150, resp.BalanceMinutes)
	assert.Equal(t, 2, resp.BalanceHours)
}

func TestGetBalance_AccessDenied(t *testing.T) {
	svc := NewService(&stubBalanceRepo{minutes: 150}, &nopLogger{})

	_, err := svc.GetBalance(context.Background(), 5, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBalance_StudentNotFound(t *testing.T) {
	svc := NewService(&stubBalanceRepo{err: balanceRepo.ErrUserNotFound}, &nopLogger{})

	_, err := svc.GetBalance(context.Background(), 5, 5)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
