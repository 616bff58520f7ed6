// ABOUTME: Run log that mirrors every step to a timestamped file and the console
// ABOUTME: File lines are "[yyyy-MM-dd HH:mm:ss] message"; console lines are styled without the stamp
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/suitepurge/suitepurge/internal/ui"
)

const (
	// TimeLayout is the per-line timestamp format
	TimeLayout = "2006-01-02 15:04:05"

	fileLayout = "20060102_150405"

	// StatusField carries the console style of an entry
	StatusField = "status"
)

// Entry statuses recorded in StatusField
const (
	StatusInfo    = "info"
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
	StatusSection = "section"
	StatusPlain   = "plain"
)

// lineFormatter renders entries as "[timestamp] message"
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return []byte("[" + e.Time.Format(TimeLayout) + "] " + e.Message + "\n"), nil
}

// Log writes each message once to the log file and once to the console
type Log struct {
	logger  *logrus.Logger
	console io.Writer
	file    *os.File
	path    string
}

// FileName returns the log file name for a run started at t
func FileName(t time.Time) string {
	return "suitepurge_" + t.Format(fileLayout) + ".log"
}

// Open creates the run's log file in dir, creating dir if needed
func Open(dir string, started time.Time, console io.Writer) (*Log, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, FileName(started))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(f)

	l := New(logger, console)
	l.file = f
	l.path = path
	return l, nil
}

// New wraps an existing logger; the formatter is replaced with the run-log line format
func New(logger *logrus.Logger, console io.Writer) *Log {
	if console == nil {
		console = io.Discard
	}
	logger.SetFormatter(lineFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	return &Log{logger: logger, console: console}
}

// Path returns the log file path, or "" when not file-backed
func (l *Log) Path() string {
	return l.path
}

// Close closes the log file
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Info records a neutral progress message
func (l *Log) Info(format string, args ...any) {
	l.write(logrus.InfoLevel, StatusInfo, ui.LevelInfo, fmt.Sprintf(format, args...))
}

// Success records a completed action
func (l *Log) Success(format string, args ...any) {
	l.write(logrus.InfoLevel, StatusSuccess, ui.LevelSuccess, fmt.Sprintf(format, args...))
}

// Warn records a skip or a non-fatal problem
func (l *Log) Warn(format string, args ...any) {
	l.write(logrus.WarnLevel, StatusWarning, ui.LevelWarning, fmt.Sprintf(format, args...))
}

// Error records a failed action
func (l *Log) Error(format string, args ...any) {
	l.write(logrus.ErrorLevel, StatusError, ui.LevelError, fmt.Sprintf(format, args...))
}

// Plain records an unstyled detail line such as a list item
func (l *Log) Plain(format string, args ...any) {
	l.write(logrus.InfoLevel, StatusPlain, ui.LevelPlain, fmt.Sprintf(format, args...))
}

// Section starts a new step with a heading
func (l *Log) Section(title string) {
	l.logger.WithField(StatusField, StatusSection).Info("=== " + title + " ===")
	fmt.Fprintln(l.console)
	fmt.Fprintln(l.console, ui.RenderSection(title, -1))
}

// Record writes a line to the log file only, for text already shown in another form
func (l *Log) Record(format string, args ...any) {
	l.logger.WithField(StatusField, StatusPlain).Info(fmt.Sprintf(format, args...))
}

// AddHook attaches a logrus hook to the underlying logger
func (l *Log) AddHook(hook logrus.Hook) {
	l.logger.AddHook(hook)
}

// Console writes pre-rendered text to the console only; pair it with a logged line
func (l *Log) Console(text string) {
	fmt.Fprintln(l.console, text)
}

func (l *Log) write(level logrus.Level, status string, style ui.Level, msg string) {
	l.logger.WithField(StatusField, status).Log(level, msg)
	ui.Fprint(l.console, style, msg)
}
