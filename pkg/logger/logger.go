// Package logger wraps go-logging with the small Infof/Warnf/Errorf surface
// the rest of the application uses.
package logger

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("pg2ch")

// Init configures the stdout backend. The level string is one of go-logging's
// names (DEBUG, INFO, WARNING, ERROR); an invalid name is an error.
func Init(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	level, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(level, "")
	logging.SetBackend(backendLeveled)
	return nil
}

func Debugf(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	log.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	log.Warningf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	log.Errorf(format, v...)
}
