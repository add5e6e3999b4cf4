// Package corrid threads a request-scoped numeric correlation identifier
// through context.Context. The id is pure tracing metadata: it carries no
// access-control meaning and no logic beyond generation and passthrough.
package corrid

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Generated ids are 5-digit integers, matching what callers are allowed to
// supply via the request header.
const (
	minID = 10000
	maxID = 99999
)

// New returns a random correlation id in [10000, 99999].
func New() int {
	return rand.Intn(maxID-minID+1) + minID
}

// Parse interprets a header value as a correlation id. Returns false when the
// value is absent or not a positive integer, in which case a fresh id should
// be generated.
func Parse(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// WithContext returns a child context carrying the correlation id.
func WithContext(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id stored in ctx, or 0 when absent.
func FromContext(ctx context.Context) int {
	id, _ := ctx.Value(ctxKey{}).(int)
	return id
}

// Logger returns l with the correlation id from ctx attached as "corr_id".
// When ctx carries no id, l is returned unchanged.
func Logger(ctx context.Context, l zerolog.Logger) zerolog.Logger {
	if id := FromContext(ctx); id != 0 {
		return l.With().Int("corr_id", id).Logger()
	}
	return l
}
