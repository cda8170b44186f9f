package main

import (
	"context"
	"log/slog"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/callable"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/spanattr"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/jarrod-lowe/jmap-service-libs/awsinit"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
	"github.com/jarrod-lowe/jmap-service-libs/tracing"
)

var logger = logging.New()

var serve = callable.Serve(functions.SimpleCallable)

// handler is invoked directly with the callable envelope
func handler(ctx context.Context, request callable.Request) (callable.Response, error) {
	var requestID string
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}

	ctx, span := tracing.StartHandlerSpan(ctx, "SimpleCallableHandler",
		tracing.Function("simple-callable"),
		tracing.RequestID(requestID),
	)
	defer span.End()

	response, err := serve(ctx, request)
	if response.Error != nil {
		span.SetAttributes(spanattr.ErrorStatus(response.Error.Status))
		logger.WarnContext(ctx, "Callable returned an error",
			slog.String("request_id", requestID),
			slog.String("status", response.Error.Status),
		)
	}
	return response, err
}

func main() {
	ctx := context.Background()

	result, err := awsinit.Init(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize AWS",
			slog.String("error", err.Error()),
		)
		panic(err)
	}
	defer result.Cleanup()

	result.Start(handler)
}
