package types

// Logger is the leveled logging surface every engine component takes
// a dependency on, mirroring the shape of a conventional structured
// logger. Ingest/dispatch never propagate errors upward; this is how
// they report what happened instead.
type Logger interface {
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
}
