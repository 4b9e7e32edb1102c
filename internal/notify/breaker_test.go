package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

func setupTestBreaker(t *testing.T, err error) (*Breaker, *recordingNotifier, *clocktesting.FakeClock) {
	t.Helper()
	clk := clocktesting.NewFakeClock(time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))
	next := &recordingNotifier{err: err}
	return NewBreaker("redis", next, 5, 30*time.Second, clk, testLogger()), next, clk
}

// openCircuit fails the threshold number of alerts.
func openCircuit(t *testing.T, b *Breaker) {
	t.Helper()
	for i := 0; i < 5; i++ {
		require.Error(t, b.Notify(context.Background(), testAlert()))
	}
}

func TestBreaker_InitialState(t *testing.T) {
	b, next, _ := setupTestBreaker(t, nil)

	require.NoError(t, b.Notify(context.Background(), testAlert()))

	state := b.State()
	assert.Equal(t, StateClosed, state.State)
	assert.Zero(t, state.Failures)
	assert.Len(t, next.alerts, 1, "alert is forwarded")
}

func TestBreaker_StaysClosedBelowThreshold(t *testing.T) {
	b, _, _ := setupTestBreaker(t, errors.New("connection refused"))

	for i := 0; i < 4; i++ {
		b.Notify(context.Background(), testAlert())
	}

	state := b.State()
	assert.Equal(t, StateClosed, state.State)
	assert.Equal(t, 4, state.Failures)
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, next, clk := setupTestBreaker(t, errors.New("connection refused"))

	openCircuit(t, b)

	err := b.Notify(context.Background(), testAlert())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Len(t, next.alerts, 5, "open circuit does not reach the notifier")

	state := b.State()
	assert.Equal(t, StateOpen, state.State)
	assert.Equal(t, clk.Now(), state.LastFailedAt)
}

func TestBreaker_HalfOpenAfterCooldown(t *testing.T) {
	b, next, clk := setupTestBreaker(t, errors.New("connection refused"))
	openCircuit(t, b)

	clk.Step(31 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State().State)

	next.err = nil
	require.NoError(t, b.Notify(context.Background(), testAlert()), "trial alert should pass")

	state := b.State()
	assert.Equal(t, StateClosed, state.State)
	assert.Zero(t, state.Failures)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, _, clk := setupTestBreaker(t, errors.New("connection refused"))
	openCircuit(t, b)

	clk.Step(31 * time.Second)

	err := b.Notify(context.Background(), testAlert())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCircuitOpen, "the trial reaches the notifier")
	assert.Equal(t, StateOpen, b.State().State)

	assert.ErrorIs(t, b.Notify(context.Background(), testAlert()), ErrCircuitOpen, "new cooldown started")
}

func TestBreaker_OneTrialAtATime(t *testing.T) {
	b, _, clk := setupTestBreaker(t, errors.New("connection refused"))
	openCircuit(t, b)
	clk.Step(31 * time.Second)

	assert.True(t, b.allow(), "first trial")
	assert.False(t, b.allow(), "second trial while the first is in flight")
}

func TestNewBreaker_Defaults(t *testing.T) {
	b := NewBreaker("x", &recordingNotifier{}, 0, 0, nil, testLogger())

	assert.Equal(t, 5, b.threshold)
	assert.Equal(t, 30*time.Second, b.cooldown)
}
