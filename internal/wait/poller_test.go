// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wait

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fieldscope/pkg/types"
)

// scriptedFetcher plays back a fixed sequence of status responses. The
// last entry repeats once the script is exhausted.
type scriptedFetcher struct {
	calls     int32
	responses []types.Envelope
	errs      []error
}

func (f *scriptedFetcher) GetAssetStatus(_ context.Context, _ types.AssetKind, _ string) (types.Envelope, error) {
	n := int(atomic.AddInt32(&f.calls, 1)) - 1
	if n >= len(f.responses) {
		n = len(f.responses) - 1
	}
	var err error
	if f.errs != nil {
		err = f.errs[n]
	}
	return f.responses[n], err
}

func (f *scriptedFetcher) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func statusEnvelope(t *testing.T, status, errMsg string) types.Envelope {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"asset_id": "as-1",
		"status":   status,
		"error":    errMsg,
	})
	require.NoError(t, err)
	return types.OK(200, body)
}

func TestWait_SucceedsAfterTransientStatuses(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []types.Envelope{
		statusEnvelope(t, "processing", ""),
		statusEnvelope(t, "processing", ""),
		statusEnvelope(t, "completed", ""),
	}}

	p := &Poller{Client: fetcher, Interval: time.Millisecond, MaxWait: time.Second}
	env := p.Wait(context.Background(), types.AssetTargetedSentiment, "as-1")

	assert.True(t, env.Success)
	assert.Equal(t, 3, fetcher.callCount(), "expected exactly 3 polls (2 sleeps)")
}

func TestWait_TerminalFailureReturnsImmediately(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []types.Envelope{
		statusEnvelope(t, "failed", "document set too small"),
	}}

	p := &Poller{Client: fetcher, Interval: time.Hour, MaxWait: 24 * time.Hour}

	done := make(chan types.Envelope, 1)
	go func() {
		done <- p.Wait(context.Background(), types.AssetEntityTable, "as-1")
	}()

	select {
	case env := <-done:
		assert.False(t, env.Success)
		assert.Equal(t, "document set too small", env.Error)
		assert.Equal(t, 1, fetcher.callCount(), "terminal failure must not sleep")
	case <-time.After(2 * time.Second):
		t.Fatal("Wait blocked on a terminal failure")
	}
}

func TestWait_TimesOutWithoutTerminalState(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []types.Envelope{
		statusEnvelope(t, "processing", ""),
	}}

	maxWait := 30 * time.Millisecond
	p := &Poller{Client: fetcher, Interval: 5 * time.Millisecond, MaxWait: maxWait}

	start := time.Now()
	env := p.Wait(context.Background(), types.AssetNarrativeLookup, "as-1")
	elapsed := time.Since(start)

	assert.False(t, env.Success)
	assert.True(t, strings.HasPrefix(env.Error, "timeout:"), "got %q", env.Error)
	assert.GreaterOrEqual(t, elapsed, maxWait)
}

func TestWait_FailureWithoutMessageGetsPlaceholder(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []types.Envelope{
		statusEnvelope(t, "failed", ""),
	}}

	p := &Poller{Client: fetcher, Interval: time.Millisecond, MaxWait: time.Second}
	env := p.Wait(context.Background(), types.AssetNarrativeGraph, "as-9")

	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "as-9")
}

func TestWait_TransportErrorsAreTransient(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []types.Envelope{
		types.Fail(0, "connection refused"),
		statusEnvelope(t, "completed", ""),
	}}

	p := &Poller{Client: fetcher, Interval: time.Millisecond, MaxWait: time.Second}
	env := p.Wait(context.Background(), types.AssetTargetedSentiment, "as-1")

	assert.True(t, env.Success)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestWait_ContextCancellation(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []types.Envelope{
		statusEnvelope(t, "queued", ""),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{Client: fetcher, Interval: time.Hour, MaxWait: 24 * time.Hour}

	done := make(chan types.Envelope, 1)
	go func() {
		done <- p.Wait(ctx, types.AssetTargetedSentiment, "as-1")
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case env := <-done:
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, context.Canceled.Error())
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not observe cancellation")
	}
}

func TestWait_LocalValidationErrorFoldedIntoEnvelope(t *testing.T) {
	fetcher := &scriptedFetcher{
		responses: []types.Envelope{{}},
		errs:      []error{fmt.Errorf("get asset status: unknown asset kind %q", "bogus")},
	}

	p := &Poller{Client: fetcher, Interval: time.Millisecond, MaxWait: time.Second}
	env := p.Wait(context.Background(), types.AssetKind("bogus"), "as-1")

	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "unknown asset kind")
	assert.Equal(t, 1, fetcher.callCount())
}
