// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data types for bioquery: the query and
// response envelopes exchanged with repository adapters, and the
// configuration structs consumed by the resource access layer.
package types

import (
	"reflect"
	"strconv"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// QueryEnvelope is the untyped key-value query passed to a repository
// adapter. There is no fixed schema; each adapter documents the keys it
// reads (e.g. "query", "target", "disease", "protein_id").
type QueryEnvelope map[string]any

// String returns the value under key when it is a string, or "".
func (q QueryEnvelope) String(key string) string {
	if s, ok := q[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the value under key coerced to an int, or fallback when the
// key is absent or not numeric. JSON decoding produces float64 and flag
// parsing produces int, so both are accepted, as are numeric strings.
func (q QueryEnvelope) Int(key string, fallback int) int {
	switch v := q[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// ResponseEnvelope is the standard reply shape every repository adapter
// returns. Error is set exactly when Status is StatusError, and Count
// equals the length of Results whenever Results is a slice and no explicit
// count was supplied. Use the constructors to keep those invariants.
type ResponseEnvelope struct {
	Query   QueryEnvelope `json:"query"`
	Results any           `json:"results"`
	Status  string        `json:"status"`
	Count   int           `json:"count"`
	Error   string        `json:"error,omitempty"`
}

// NewResponse builds a success envelope. When results is a slice, Count is
// its length; for any other payload shape Count is zero. A nil results
// value is normalized to an empty list.
func NewResponse(query QueryEnvelope, results any) ResponseEnvelope {
	return NewResponseWithCount(query, results, deriveCount(results))
}

// NewResponseWithCount builds a success envelope with an explicit count,
// for sources that report a total independent of the returned page (e.g.
// PubMed's esearchresult.count).
func NewResponseWithCount(query QueryEnvelope, results any, count int) ResponseEnvelope {
	if results == nil {
		results = []any{}
	}
	return ResponseEnvelope{
		Query:   query,
		Results: results,
		Status:  StatusSuccess,
		Count:   count,
	}
}

// ErrorResponse builds an error envelope with empty results and a zero
// count. Every adapter-level failure is reported this way; no error ever
// propagates past the repository boundary.
func ErrorResponse(query QueryEnvelope, msg string) ResponseEnvelope {
	return ResponseEnvelope{
		Query:   query,
		Results: []any{},
		Status:  StatusError,
		Count:   0,
		Error:   msg,
	}
}

func deriveCount(results any) int {
	if results == nil {
		return 0
	}
	v := reflect.ValueOf(results)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return v.Len()
	}
	return 0
}
