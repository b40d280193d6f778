package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

// logrusLogger backs Logger with a standard logrus.Logger instance,
// tagging every line with a component field the way the reference
// emulator's own log package tags entries with a module name.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus returns a Logger that writes structured lines through
// logrus, tagged with component.
func NewLogrus(component string) Logger {
	l := logrus.New()
	return &logrusLogger{entry: l.WithField("component", component)}
}

func (l *logrusLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logrusLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}
