package harness

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/auth"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/callable"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
)

// CallableFunc invokes a wrapped callable with a raw payload
type CallableFunc[Resp any] func(ctx context.Context, data any, opts ContextOptions) (Resp, error)

// DocumentTriggerFunc invokes a wrapped document trigger
type DocumentTriggerFunc func(ctx context.Context, snap docstore.Snapshot, opts ContextOptions) error

// AuthTriggerFunc invokes a wrapped auth trigger
type AuthTriggerFunc func(ctx context.Context, user auth.UserRecord, opts ContextOptions) error

type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.value)
}

// WrapCallable adapts fn for direct invocation. The payload travels through
// the same envelope encoding a deployed callable uses, so decode failures
// surface as INVALID_ARGUMENT errors.
func WrapCallable[Req, Resp any](fn func(context.Context, Req, callable.CallContext) (Resp, error)) CallableFunc[Resp] {
	serve := callable.Serve(fn)
	return func(ctx context.Context, data any, opts ContextOptions) (Resp, error) {
		var zero Resp

		raw, err := json.Marshal(data)
		if err != nil {
			return zero, fmt.Errorf("failed to encode callable data: %w", err)
		}

		resp, err := serve(ctx, callable.Request{Data: raw, Auth: opts.Auth})
		if err != nil {
			return zero, err
		}
		if resp.Error != nil {
			return zero, resp.Error
		}

		var result Resp
		if err := json.Unmarshal(resp.Result, &result); err != nil {
			return zero, fmt.Errorf("failed to decode callable result: %w", err)
		}
		return result, nil
	}
}

// WrapDocumentTrigger adapts a document-create handler bound to pattern for
// direct invocation. Every wildcard of pattern must be present in
// opts.Params; a missing one is a caller error and fn is not run.
func WrapDocumentTrigger(pattern trigger.Pattern, fn trigger.DocumentHandler) DocumentTriggerFunc {
	return func(ctx context.Context, snap docstore.Snapshot, opts ContextOptions) error {
		resource, err := pattern.Expand(opts.Params)
		if err != nil {
			return err
		}
		return fn(ctx, snap, opts.eventContext(trigger.EventTypeDocumentCreate, resource))
	}
}

// WrapAuthTrigger adapts a user-create handler for direct invocation. The
// event resource is the user pool, as on a Cognito delivered event.
func WrapAuthTrigger(fn trigger.UserHandler) AuthTriggerFunc {
	return func(ctx context.Context, user auth.UserRecord, opts ContextOptions) error {
		pool := opts.UserPool
		if pool == "" {
			pool = LocalUserPoolID
		}
		return fn(ctx, user, opts.eventContext(trigger.EventTypeUserCreate, pool))
	}
}
