package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/ADS-SchedulingService/pkg/metrics"
)

// DB обёртка над *sql.DB, собирающая метрики выполнения запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	service string
}

// Wrap оборачивает *sql.DB в сборщик метрик
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string) *DB {
	return &DB{
		db:      db,
		metrics: m,
		service: serviceName,
	}
}

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор статистики connection pool
// Сбор останавливается при закрытии stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, serviceName)
	go wrapped.collectPoolStats(stopCh, 10*time.Second)
	return wrapped
}

// ExecContext выполняет запрос без результата с замером времени
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(queryOperation(query), time.Since(start), err)
	return result, err
}

// QueryContext выполняет запрос с результатом с замером времени
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(queryOperation(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с замером времени
// Ошибка выполнения доступна только при Scan, поэтому здесь фиксируется только длительность
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(queryOperation(query), time.Since(start), nil)
	return row
}

// BeginTx начинает транзакцию, запросы внутри которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// Stats возвращает статистику connection pool
func (d *DB) Stats() sql.DBStats {
	return d.db.Stats()
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.metrics.SetDBPoolStats(d.db.Stats())
		case <-stopCh:
			return
		}
	}
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext выполняет запрос внутри транзакции с замером времени
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(queryOperation(query), time.Since(start), err)
	return result, err
}

// QueryContext выполняет запрос внутри транзакции с замером времени
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(queryOperation(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(queryOperation(query), time.Since(start), nil)
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// queryOperation определяет тип операции по первому слову запроса
func queryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
