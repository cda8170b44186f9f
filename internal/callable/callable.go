package callable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
)

var logger = logging.New()

// Status codes carried in Error.Status
const (
	StatusInvalidArgument = "INVALID_ARGUMENT"
	StatusInternal        = "INTERNAL"
)

// Request is the wire envelope of a callable invocation
type Request struct {
	Data json.RawMessage      `json:"data"`
	Auth *trigger.AuthContext `json:"auth,omitempty"`
}

// Response is the wire envelope of a callable result. Exactly one of
// Result and Error is set.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// Error is a callable failure reported to the caller
type Error struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// NewError creates a callable error with the given status
func NewError(status, message string) *Error {
	return &Error{Status: status, Message: message}
}

// CallContext carries the caller identity into a callable handler
type CallContext struct {
	Auth *trigger.AuthContext
}

// Serve adapts fn to a Lambda handler speaking the callable envelope.
// Handler failures are reported in the envelope, not as Lambda errors;
// a returned *Error keeps its status, anything else becomes INTERNAL.
func Serve[Req, Resp any](fn func(ctx context.Context, data Req, cc CallContext) (Resp, error)) func(context.Context, Request) (Response, error) {
	return func(ctx context.Context, request Request) (Response, error) {
		var data Req
		if len(request.Data) > 0 {
			if err := json.Unmarshal(request.Data, &data); err != nil {
				logger.WarnContext(ctx, "Invalid callable payload",
					slog.String("error", err.Error()),
				)
				return errorResponse(NewError(StatusInvalidArgument, "invalid request data")), nil
			}
		}

		result, err := fn(ctx, data, CallContext{Auth: request.Auth})
		if err != nil {
			var cerr *Error
			if errors.As(err, &cerr) {
				return errorResponse(cerr), nil
			}
			logger.ErrorContext(ctx, "Callable handler failed",
				slog.String("error", err.Error()),
			)
			return errorResponse(NewError(StatusInternal, "internal error")), nil
		}

		body, err := json.Marshal(result)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to marshal callable result",
				slog.String("error", err.Error()),
			)
			return errorResponse(NewError(StatusInternal, "internal error")), nil
		}
		return Response{Result: body}, nil
	}
}

func errorResponse(err *Error) Response {
	return Response{Error: err}
}
