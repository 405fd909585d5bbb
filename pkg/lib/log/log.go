// Package log provides the logging interface for the janosik SDK.
//
// The SDK accepts any implementation of [Logger]. Use [Noop] to disable
// logging (this is the default when no logger is configured), or [NewLogrus]
// to log through a logrus entry:
//
//	logger := log.NewLogrus(logrus.NewEntry(logrus.StandardLogger()))
//	client, err := lib.New(ctx, lib.Config{Logger: logger})
package log

import (
	"github.com/sirupsen/logrus"

	"github.com/janosik-bot/janosik/internal/log"
	loglogrus "github.com/janosik-bot/janosik/internal/log/logrus"
)

// Logger is the interface that loggers must implement for the SDK.
//
// Runs log with the run-id and program values set, so structured
// implementations should keep the [Kv] values of WithValues.
type Logger = log.Logger

// Kv is a helper type for structured logging key-value pairs.
type Kv = log.Kv

// Noop is a logger that discards all log output.
var Noop = log.Noop

// NewLogrus returns a Logger backed by a logrus entry.
func NewLogrus(e *logrus.Entry) Logger {
	return loglogrus.NewLogrus(e)
}
