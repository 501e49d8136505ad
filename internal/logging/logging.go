// Package logging configures the diagnostic logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w. Only warnings and errors are
// emitted unless debug is set.
func New(w io.Writer, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !debug,
		FullTimestamp:    true,
		DisableColors:    true,
	})
	l.SetLevel(logrus.WarnLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
