package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priya8975/conflict-monitor/internal/domain"
)

type recordingNotifier struct {
	alerts []Alert
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, a Alert) error {
	r.alerts = append(r.alerts, a)
	return r.err
}

func testAlert() Alert {
	return Alert{
		Kind:       KindCriticalItem,
		Severity:   domain.SeverityCritical,
		Message:    "BREAKING: Military mobilization reported in Eastern Europe.",
		LocationID: "eastern-europe",
		EventID:    "evt-1",
		At:         time.Unix(1_700_000_000, 0).UTC(),
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, n.Notify(context.Background(), testAlert()))

	out := buf.String()
	assert.Contains(t, out, `"msg":"critical alert"`)
	assert.Contains(t, out, `"location_id":"eastern-europe"`)
	assert.Contains(t, out, `"event_id":"evt-1"`)
}

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	ok := &recordingNotifier{}
	failing := &recordingNotifier{err: errors.New("siren offline")}
	m := Multi{ok, nil, failing}

	err := m.Notify(context.Background(), testAlert())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "siren offline")
	assert.Len(t, ok.alerts, 1)
	assert.Len(t, failing.alerts, 1)
}

func TestMulti_Empty(t *testing.T) {
	assert.NoError(t, Multi{}.Notify(context.Background(), testAlert()))
}

func TestRedisNotifier_Publishes(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "conflict:alerts")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := NewRedisNotifier(client, "conflict:alerts", nil, 0, testLogger())
	require.NoError(t, n.Notify(ctx, testAlert()))

	select {
	case msg := <-sub.Channel():
		var got Alert
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, testAlert(), got)
	case <-time.After(2 * time.Second):
		t.Fatal("alert was not published")
	}
}

func TestRedisNotifier_Throttled(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	limiter := NewRateLimiter(client, time.Minute, nil, testLogger())
	n := NewRedisNotifier(client, "conflict:alerts", limiter, 2, testLogger())

	for i := 0; i < 5; i++ {
		require.NoError(t, n.Notify(ctx, testAlert()))
	}

	members, err := mr.ZMembers(alertBudgetKey("eastern-europe"))
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestRedisNotifier_PublishError(t *testing.T) {
	client, mr := setupTestRedis(t)
	n := NewRedisNotifier(client, "conflict:alerts", nil, 0, testLogger())
	mr.Close()

	err := n.Notify(context.Background(), testAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publishing alert")
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	require.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	_, mr := setupTestRedis(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()
}
