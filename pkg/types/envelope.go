// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the fieldscope client
// and workflow pipeline.
package types

import "encoding/json"

// Envelope is the uniform result wrapper returned by every client
// operation. Exactly one of Data and Error is meaningful, governed by
// Success: a successful call carries the raw response payload in Data,
// a failed call carries a human-readable message in Error.
//
// Ordinary remote failures (non-2xx status, network error, malformed
// response body) are captured in the envelope and never returned as Go
// errors; only local usage errors surface through the error return of
// the operation that produced the envelope.
type Envelope struct {
	// Success reports whether the remote call completed with a 2xx
	// status and a parseable body.
	Success bool `json:"success"`

	// StatusCode is the HTTP status of the response, or 0 when the
	// request never produced one (network error, cancelled context,
	// poller timeout).
	StatusCode int `json:"status_code"`

	// Data holds the raw JSON payload of a successful response.
	Data json.RawMessage `json:"data,omitempty"`

	// Error holds the failure message: the server's reported error
	// when one was parseable, otherwise a description of what went
	// wrong locally.
	Error string `json:"error,omitempty"`
}

// OK builds a success envelope around a raw payload.
func OK(statusCode int, data json.RawMessage) Envelope {
	return Envelope{Success: true, StatusCode: statusCode, Data: data}
}

// Fail builds a failure envelope with the given message.
func Fail(statusCode int, msg string) Envelope {
	return Envelope{Success: false, StatusCode: statusCode, Error: msg}
}

// Decode unmarshals the envelope's Data payload into v.
func (e Envelope) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}
