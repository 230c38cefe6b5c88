// Package log provides the subject-first leveled logging convention used
// throughout ntfsview, modeled on rclone's fs.Logf/fs.Debugf/fs.Errorf
// family of helpers.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetDebug raises the log level to Debug when enabled is true, matching the
// root command's --debug flag.
func SetDebug(enabled bool) {
	if enabled {
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output, used by tests to capture log lines.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func subject(s any) string {
	if s == nil {
		return "-"
	}
	if str, ok := s.(string); ok {
		if str == "" {
			return "-"
		}
		return str
	}
	if stringer, ok := s.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%v", s)
}

// Debugf logs a debug-level message about subject s.
func Debugf(s any, format string, args ...any) {
	std.WithField("subject", subject(s)).Debugf(format, args...)
}

// Infof logs an info-level message about subject s.
func Infof(s any, format string, args ...any) {
	std.WithField("subject", subject(s)).Infof(format, args...)
}

// Logf is an alias for Infof, matching rclone's general-purpose fs.Logf.
func Logf(s any, format string, args ...any) {
	Infof(s, format, args...)
}

// Warnf logs a warn-level message about subject s.
func Warnf(s any, format string, args ...any) {
	std.WithField("subject", subject(s)).Warnf(format, args...)
}

// Errorf logs an error-level message about subject s.
func Errorf(s any, format string, args ...any) {
	std.WithField("subject", subject(s)).Errorf(format, args...)
}
