package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/observability/statsd"
)

func TestEmitSessionOperation_Success(t *testing.T) {
	var rec statsd.Recorder

	EmitSessionOperation(&rec, SessionMetric{
		Operation: "login",
		Result:    ResultSuccess,
		Duration:  25 * time.Millisecond,
	})

	counts := rec.Counts()
	require.Len(t, counts, 1)
	assert.Equal(t, "session.operation", counts[0].Name)
	assert.Equal(t, map[string]string{"operation": "login", "result": "success"}, counts[0].Tags)

	timings := rec.Timings()
	require.Len(t, timings, 1)
	assert.Equal(t, 25*time.Millisecond, timings[0].Duration)
}

func TestEmitSessionOperation_ErrorClass(t *testing.T) {
	var rec statsd.Recorder

	EmitSessionOperation(&rec, SessionMetric{
		Operation: "fetch_profile",
		Result:    ResultError,
		Err:       apperrors.Unauthorized("token rejected"),
	})

	counts := rec.Counts()
	require.Len(t, counts, 1)
	assert.Equal(t, "unauthorized", counts[0].Tags["error_class"])
	assert.Empty(t, rec.Timings(), "no timing without a duration")
}

func TestEmitSessionOperation_NilSink(t *testing.T) {
	EmitSessionOperation(nil, SessionMetric{Operation: "logout"})
	SessionTransition(nil, true)
}

func TestSessionTransition(t *testing.T) {
	var rec statsd.Recorder
	SessionTransition(&rec, true)
	SessionTransition(&rec, false)

	counts := rec.Counts()
	require.Len(t, counts, 2)
	assert.Equal(t, "signed_in", counts[0].Tags["state"])
	assert.Equal(t, "signed_out", counts[1].Tags["state"])
}

func TestResultFor(t *testing.T) {
	assert.Equal(t, ResultSuccess, ResultFor(nil))
	assert.Equal(t, ResultError, ResultFor(errors.New("x")))
}
