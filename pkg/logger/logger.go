package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger простой леверованный логгер с выводом в stdout и опционально в файл
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает новый логгер
// Если filePath не пустой, лог дублируется в файл (файл дописывается)
func New(filePath string, level string) (*Logger, error) {
	l := &Logger{
		level: parseLevel(level),
	}

	writers := []io.Writer{os.Stdout}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", filePath, err)
		}
		l.file = f
		writers = append(writers, f)
	}

	l.out = log.New(io.MultiWriter(writers...), "", log.LstdFlags)

	return l, nil
}

// Close закрывает файл лога, если он был открыт
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Debug логирует сообщение с уровнем DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	l.print(LevelDebug, "DEBUG", format, v...)
}

// Info логирует сообщение с уровнем INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.print(LevelInfo, "INFO", format, v...)
}

// Warn логирует сообщение с уровнем WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.print(LevelWarn, "WARN", format, v...)
}

// Error логирует сообщение с уровнем ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.print(LevelError, "ERROR", format, v...)
}

// Fatal логирует сообщение с уровнем FATAL и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.print(LevelError, "FATAL", format, v...)
	if l.file != nil {
		_ = l.file.Close()
	}
	os.Exit(1)
}

func (l *Logger) print(level Level, tag string, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
