package sentryutil

import (
	"time"

	"github.com/getsentry/sentry-go"

	"camperwatch/logger"
)

// Init configures Sentry error tracking. A missing DSN disables
// reporting without failing startup.
func Init(dsn, environment string) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		logger.Warn("Sentry init (non-blocking): %v", err)
		return
	}
	if dsn == "" {
		logger.Debug("SENTRY_DSN empty, error tracking disabled")
	}
}

// Flush drains pending events before process exit
func Flush() {
	sentry.Flush(2 * time.Second)
}

// CaptureError reports an error with tags
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}
