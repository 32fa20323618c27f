package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/lectern/internal/constants"
)

// rotation limits for the log file
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	// Logger is the global logger instance. Nil until Init succeeds.
	Logger *log.Logger

	path string
)

// Config holds logger configuration
type Config struct {
	// Verbose lowers the level to debug and mirrors records to stderr.
	Verbose bool
	// Dir is the directory holding the store; logs go to Dir/logs.
	Dir string
}

// Init points the global logger at a rotating logfmt file under cfg.Dir.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.Dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}
	path = filepath.Join(logDir, constants.AppName+".log")

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Verbose {
		// the TUI owns the terminal unless the user asked for output
		out = io.MultiWriter(os.Stderr, out)
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(out, log.Options{
		Formatter:       log.LogfmtFormatter,
		ReportCaller:    cfg.Verbose,
		CallerOffset:    1,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string { return path }

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Helper()
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }

// Fatal logs at error level and exits with status 1, even without Init.
func Fatal(msg string, keyvals ...interface{}) {
	emit(log.ErrorLevel, msg, keyvals)
	os.Exit(1)
}
