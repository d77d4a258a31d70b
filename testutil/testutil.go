// Package testutil provides testing helpers for the forge SDK: a scripted
// fake transport that records every dispatched request, and small assertion
// helpers. It is import-cycle safe and usable from any package.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/forgehub/forge"
)

// FakeTransport is a forge.Transport that replays scripted responses and
// records every request it performs. Responses are consumed in order; the
// last one repeats once the script runs out.
type FakeTransport struct {
	responses []*forge.RawResponse
	errs      []error
	requests  []*forge.Request
}

// NewFakeTransport creates an empty fake. With no scripted responses it
// answers 200 with an empty body.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// Respond scripts a response with the given status and JSON body. The body
// may be a raw string, []byte, or any JSON-encodable value; nil means an
// empty body. It returns the fake for chaining.
func (f *FakeTransport) Respond(status int, body any) *FakeTransport {
	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	case []byte:
		raw = b
	default:
		raw, _ = json.Marshal(b)
	}
	f.responses = append(f.responses, &forge.RawResponse{Status: status, Body: raw})
	f.errs = append(f.errs, nil)
	return f
}

// Fail scripts a transport-level failure (connectivity error), returned
// as-is without translation. It returns the fake for chaining.
func (f *FakeTransport) Fail(err error) *FakeTransport {
	f.responses = append(f.responses, nil)
	f.errs = append(f.errs, err)
	return f
}

// Perform implements forge.Transport.
func (f *FakeTransport) Perform(_ context.Context, req *forge.Request) (*forge.RawResponse, error) {
	f.requests = append(f.requests, req)

	if len(f.responses) == 0 {
		return &forge.RawResponse{Status: 200}, nil
	}
	i := len(f.requests) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	if f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return f.responses[i], nil
}

// Requests returns every request performed so far, in order.
func (f *FakeTransport) Requests() []*forge.Request {
	return f.requests
}

// LastRequest returns the most recent request, or nil if none was performed.
func (f *FakeTransport) LastRequest() *forge.Request {
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

// AssertRequestCount fails the test unless exactly want requests were
// performed.
func AssertRequestCount(t *testing.T, f *FakeTransport, want int) {
	t.Helper()
	if got := len(f.requests); got != want {
		t.Errorf("expected %d request(s), got %d", want, got)
	}
}

// AssertRequested fails the test unless the most recent request used the
// given verb and path.
func AssertRequested(t *testing.T, f *FakeTransport, verb, path string) {
	t.Helper()
	req := f.LastRequest()
	if req == nil {
		t.Errorf("expected a %s %s request, got none", verb, path)
		return
	}
	if req.Verb != verb || req.Path != path {
		t.Errorf("expected %s %s, got %s %s", verb, path, req.Verb, req.Path)
	}
}

// AssertErrorCode fails the test unless err is a *forge.Error with the given
// code.
func AssertErrorCode(t *testing.T, err error, code forge.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error with code %s, got nil", code)
		return
	}
	var e *forge.Error
	if !errors.As(err, &e) {
		t.Errorf("expected *forge.Error, got %T: %v", err, err)
		return
	}
	if e.Code != code {
		t.Errorf("expected code %s, got %s (%v)", code, e.Code, err)
	}
}
