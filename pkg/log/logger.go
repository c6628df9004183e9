// Package log gives every part of the tracer a module-named, leveled logger.
// All loggers share one go-logging backend, so SetSink and SetLevel apply everywhere.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// Level orders messages from most to least verbose
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = [...]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

func (l Level) backend() logging.Level {
	if l < Debug || l > Error {
		return logging.NOTICE
	}
	return backendLevels[l]
}

func (l Level) String() string {
	return l.backend().String()
}

// lineFormat prints "15:04:05.000 NOTI [renderer] message"
var lineFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} [%{module}]%{color:reset} %{message}`,
)

// Logger is satisfied by *logging.Logger
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Notice(v ...interface{})
	Noticef(format string, v ...interface{})
	Warning(v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

var (
	mu      sync.Mutex
	current = Notice
	leveled logging.LeveledBackend
)

// New returns the logger for module
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink sends output from every module to w. The level is kept.
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), lineFormat)
	leveled = logging.AddModuleLevel(formatted)
	leveled.SetLevel(current.backend(), "")
	logging.SetBackend(leveled)
}

// SetLevel drops messages below level for every module
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	current = level
	leveled.SetLevel(level.backend(), "")
}

// GetLevel returns the active level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return current
}

func init() {
	SetSink(os.Stderr)
}
