// Package logger holds the process-wide structured logger. Records always go
// to a size-rotated file under the config directory; stderr only sees them
// with --debug or while serving HTTP, so regular command output stays clean.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
)

// Logger is nil until Init runs. The package helpers drop records while it
// is nil, which lets tests and library code log unconditionally.
var Logger *log.Logger

var file *lumberjack.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr mirrors records at info level and above to stderr.
	Stderr bool
}

// LogFile is where Init writes records for the given config directory.
func LogFile(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func (c Config) level() log.Level {
	switch {
	case c.Debug:
		return log.DebugLevel
	case c.Stderr:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// Init replaces the global logger. Calling it again closes the previous
// log file.
func Init(cfg Config) error {
	path := LogFile(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	Close()

	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB per file
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	var out io.Writer = file
	if cfg.Debug || cfg.Stderr {
		out = io.MultiWriter(os.Stderr, file)
	}

	Logger = log.NewWithOptions(out, log.Options{
		Level:           cfg.level(),
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

// Close releases the log file. Records logged afterwards reopen it.
func Close() error {
	if file == nil {
		return nil
	}
	return file.Close()
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
