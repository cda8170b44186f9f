package harness

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
)

// MakeHTTPRequest builds a GET request carrying query
func MakeHTTPRequest(query map[string]string) functions.HTTPRequest {
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	return functions.HTTPRequest{
		Method:  "GET",
		Path:    "/",
		Query:   values,
		Headers: map[string]string{},
	}
}

// FakeResponse captures the body an HTTP function sends instead of
// transmitting it. Send may be called from any goroutine.
type FakeResponse struct {
	body  *Completion[string]
	sends atomic.Int32
}

// NewFakeResponse returns a response that has not been sent
func NewFakeResponse() *FakeResponse {
	return &FakeResponse{body: NewCompletion[string]()}
}

// Send records body. Only the first call is kept.
func (r *FakeResponse) Send(body string) {
	r.sends.Add(1)
	_ = r.body.Resolve(body)
}

// Fail rejects the pending body, for handlers that abort before sending
func (r *FakeResponse) Fail(err error) {
	_ = r.body.Reject(err)
}

// Sends returns how many times Send was called
func (r *FakeResponse) Sends() int {
	return int(r.sends.Load())
}

// Wait blocks until the body is sent or ctx ends
func (r *FakeResponse) Wait(ctx context.Context) (string, error) {
	return r.body.Wait(ctx)
}

// MakeHTTPPair builds a request carrying query and a fresh response
func MakeHTTPPair(query map[string]string) (functions.HTTPRequest, *FakeResponse) {
	return MakeHTTPRequest(query), NewFakeResponse()
}

// InvokeHTTP runs fn on its own goroutine and waits for the response body.
// A panic in fn rejects the response.
func InvokeHTTP(ctx context.Context, fn func(context.Context, functions.HTTPRequest, functions.Responder), query map[string]string) (string, error) {
	req, res := MakeHTTPPair(query)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				res.Fail(panicError{value: r})
			}
		}()
		fn(ctx, req, res)
	}()
	return res.Wait(ctx)
}
