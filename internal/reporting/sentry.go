// Package reporting adapts internal/core's ErrorReporter to Sentry, the
// error-tracking backend cmd/jsaction-wasm uses for recovered panics
// (fast-click's blur/clearSelection side effects, primarily). Grounded on
// the pack's sentry-go usage (newbpydev-bubblyui/pkg/bubbly/observability),
// trimmed to the single hub.CaptureException call this contract needs.
package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/jsaction-go/contract/internal/core"
)

// NewSentryReporter initializes the Sentry SDK against dsn and returns a
// core.ErrorReporter plus a flush func to call before process exit. An
// empty dsn disables sending without erroring, for local/dev runs.
func NewSentryReporter(dsn string) (core.ErrorReporter, func(time.Duration), error) {
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		return nil, nil, fmt.Errorf("initializing sentry: %w", err)
	}

	report := func(recovered any, where string) {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("where", where)
			sentry.CaptureException(fmt.Errorf("%s: %v", where, recovered))
		})
	}
	flush := func(timeout time.Duration) { sentry.Flush(timeout) }
	return report, flush, nil
}
