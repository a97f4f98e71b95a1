// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wait polls an analysis asset until it reaches a terminal
// processing state or the configured maximum wait elapses. It is the
// only component in the repository with nontrivial control flow: the
// loop distinguishes transient states (keep polling), terminal failure
// (stop, report the server's error), and exhaustion (stop, report a
// timeout). Every outcome is reported as an envelope.
package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pdiddy/fieldscope/pkg/types"
)

const (
	defaultInterval = 10 * time.Second
	defaultMaxWait  = 15 * time.Minute
)

// StatusFetcher fetches the current processing status of one asset.
// *client.Client satisfies it.
type StatusFetcher interface {
	GetAssetStatus(ctx context.Context, kind types.AssetKind, id string) (types.Envelope, error)
}

// Poller repeatedly checks an asset's status at a fixed interval,
// blocking the caller for the duration. Zero-value durations fall back
// to the defaults.
type Poller struct {
	Client   StatusFetcher
	Interval time.Duration
	MaxWait  time.Duration
}

// New builds a Poller from configuration.
func New(c StatusFetcher, cfg types.PollConfig) *Poller {
	return &Poller{Client: c, Interval: cfg.Interval, MaxWait: cfg.MaxWait}
}

// assetStatusBody is the subset of the status payload the poller needs.
type assetStatusBody struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Wait polls until the asset reaches a terminal state or MaxWait
// elapses. It returns:
//   - the final success envelope when the asset completes;
//   - a failure envelope carrying the server's reported error when the
//     asset fails;
//   - a timeout failure envelope when elapsed time reaches MaxWait;
//   - a failure envelope with the context error when ctx is cancelled
//     during a wait.
//
// Transport failures mid-poll count as transient: the loop keeps
// polling, still bounded by MaxWait. Wait never returns a Go error for
// any of these outcomes; only an invalid kind/ID fails fast through
// the fetcher's own validation, and that too is folded into the
// envelope since it cannot succeed on retry.
func (p *Poller) Wait(ctx context.Context, kind types.AssetKind, id string) types.Envelope {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	maxWait := p.MaxWait
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}

	ticker := backoff.NewConstantBackOff(interval)
	start := time.Now()

	for {
		env, err := p.Client.GetAssetStatus(ctx, kind, id)
		if err != nil {
			// Local validation error: retrying cannot help.
			return types.Fail(0, err.Error())
		}

		if env.Success {
			var body assetStatusBody
			if decodeErr := env.Decode(&body); decodeErr == nil {
				status := types.AssetStatus(body.Status)
				if status.Failed() {
					msg := body.Error
					if msg == "" {
						msg = fmt.Sprintf("asset %s/%s failed without a reported error", kind, id)
					}
					return types.Fail(env.StatusCode, msg)
				}
				if status.Terminal() {
					return env
				}
			}
			// Non-terminal or undecodable status: transient.
		}

		if time.Since(start) >= maxWait {
			return types.Fail(0, fmt.Sprintf(
				"timeout: asset %s/%s not terminal after %s", kind, id, maxWait))
		}

		select {
		case <-ctx.Done():
			return types.Fail(0, fmt.Sprintf("polling %s/%s: %v", kind, id, ctx.Err()))
		case <-time.After(ticker.NextBackOff()):
		}
	}
}
