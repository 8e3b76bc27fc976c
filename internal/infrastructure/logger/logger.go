// Package logger exposes package-level leveled loggers. Info and Debug write
// to stdout; Warn and Error write to stderr so they survive stdout
// redirection.
package logger

import (
	"log"
	"os"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

func init() {
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

	Info = log.New(os.Stdout, "INFO: ", logFlags)
	Debug = log.New(os.Stdout, "DEBUG: ", logFlags)
	Warn = log.New(os.Stderr, "WARN: ", logFlags)
	Error = log.New(os.Stderr, "ERROR: ", logFlags)
}
