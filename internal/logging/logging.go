// Package logging constructs loggers for the dispatcher and the
// entrypoints. Construction is explicit: callers build a logger and
// hand it to whatever needs one, there is no package-level ambient
// logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger writing to out at the given level. An
// unknown level falls back to error. When timestamps is false they are
// omitted from output; the Lambda runtime prefixes its own.
func New(level string, out io.Writer, timestamps bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.ErrorLevel
	}
	log.SetLevel(lvl)

	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !timestamps,
		FullTimestamp:    timestamps,
	})

	return log
}
