package metrics

import (
	"time"

	obserrors "github.com/target/mmk-accounts-ui/internal/observability/errors"
	"github.com/target/mmk-accounts-ui/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// SessionMetric captures one session store operation for metric emission.
type SessionMetric struct {
	Operation string
	Result    string
	Duration  time.Duration
	Err       error
}

// EmitSessionOperation emits standardised session operation metrics.
func EmitSessionOperation(sink statsd.Sink, in SessionMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"operation": in.Operation,
		"result":    in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("session.operation", 1, tags)

	if in.Duration > 0 {
		sink.Timing("session.operation.duration", in.Duration, CloneTags(tags))
	}
}

// SessionTransition records the authenticated/unauthenticated edge of a session.
func SessionTransition(sink statsd.Sink, authenticated bool) {
	if sink == nil {
		return
	}
	state := "signed_out"
	if authenticated {
		state = "signed_in"
	}
	sink.Count("session.transition", 1, map[string]string{"state": state})
}

// ResultFor maps an error to a result tag.
func ResultFor(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
