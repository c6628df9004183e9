package server

import (
	"fmt"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning", "error"
}

// WebLogger forwards every message to a server logger and mirrors it
// to a per-render console channel
type WebLogger struct {
	renderID    string
	next        log.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, next log.Logger, consoleChan chan<- ConsoleMessage) log.Logger {
	return &WebLogger{
		renderID:    renderID,
		next:        next,
		consoleChan: consoleChan,
	}
}

// publish sends to the web console without blocking
func (wl *WebLogger) publish(level, message string) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip
	}
}

func (wl *WebLogger) Debug(v ...interface{}) {
	wl.next.Debug(v...)
	wl.publish("debug", fmt.Sprint(v...))
}

func (wl *WebLogger) Debugf(format string, v ...interface{}) {
	wl.next.Debugf(format, v...)
	wl.publish("debug", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Info(v ...interface{}) {
	wl.next.Info(v...)
	wl.publish("info", fmt.Sprint(v...))
}

func (wl *WebLogger) Infof(format string, v ...interface{}) {
	wl.next.Infof(format, v...)
	wl.publish("info", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Notice(v ...interface{}) {
	wl.next.Notice(v...)
	wl.publish("notice", fmt.Sprint(v...))
}

func (wl *WebLogger) Noticef(format string, v ...interface{}) {
	wl.next.Noticef(format, v...)
	wl.publish("notice", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Warning(v ...interface{}) {
	wl.next.Warning(v...)
	wl.publish("warning", fmt.Sprint(v...))
}

func (wl *WebLogger) Warningf(format string, v ...interface{}) {
	wl.next.Warningf(format, v...)
	wl.publish("warning", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Error(v ...interface{}) {
	wl.next.Error(v...)
	wl.publish("error", fmt.Sprint(v...))
}

func (wl *WebLogger) Errorf(format string, v ...interface{}) {
	wl.next.Errorf(format, v...)
	wl.publish("error", fmt.Sprintf(format, v...))
}
