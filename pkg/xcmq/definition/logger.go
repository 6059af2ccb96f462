package definition

import (
	"os"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
	"github.com/sirupsen/logrus"
)

// logrusLogger backs types.Logger with a real structured-logging
// library instead of the standard library's bare log.Logger.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewDefaultLogger returns the logger used when a host does not
// supply its own. It writes leveled, component-tagged lines to
// stderr.
func NewDefaultLogger(component string) types.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return &logrusLogger{entry: l.WithField("component", component)}
}

// ToggleDebug flips the underlying logrus level between Info and
// Debug.
func ToggleDebug(log types.Logger, on bool) {
	ll, ok := log.(*logrusLogger)
	if !ok {
		return
	}
	if on {
		ll.entry.Logger.SetLevel(logrus.DebugLevel)
	} else {
		ll.entry.Logger.SetLevel(logrus.InfoLevel)
	}
}

func (l *logrusLogger) Info(args ...interface{})          { l.entry.Info(args...) }
func (l *logrusLogger) Infof(f string, a ...interface{})  { l.entry.Infof(f, a...) }
func (l *logrusLogger) Warn(args ...interface{})          { l.entry.Warn(args...) }
func (l *logrusLogger) Warnf(f string, a ...interface{})  { l.entry.Warnf(f, a...) }
func (l *logrusLogger) Error(args ...interface{})         { l.entry.Error(args...) }
func (l *logrusLogger) Errorf(f string, a ...interface{}) { l.entry.Errorf(f, a...) }
func (l *logrusLogger) Debug(args ...interface{})         { l.entry.Debug(args...) }
func (l *logrusLogger) Debugf(f string, a ...interface{}) { l.entry.Debugf(f, a...) }

var _ types.Logger = (*logrusLogger)(nil)
