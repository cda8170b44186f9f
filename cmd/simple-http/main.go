package main

import (
	"context"
	"log/slog"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
	"github.com/aws/aws-lambda-go/events"
	"github.com/jarrod-lowe/jmap-service-libs/awsinit"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
	"github.com/jarrod-lowe/jmap-service-libs/tracing"
	"go.opentelemetry.io/otel/attribute"
)

var logger = logging.New()

const contentTypeText = "text/plain; charset=utf-8"

// bufferedResponse keeps the first body sent by the function
type bufferedResponse struct {
	body string
	sent bool
}

func (r *bufferedResponse) Send(body string) {
	if r.sent {
		return
	}
	r.body = body
	r.sent = true
}

func handler(ctx context.Context, request events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	ctx, span := tracing.StartHandlerSpan(ctx, "SimpleHTTPHandler",
		tracing.Function("simple-http"),
		tracing.RequestID(request.RequestContext.RequestID),
		attribute.String("path", request.RequestContext.HTTP.Path),
	)
	defer span.End()

	logger.InfoContext(ctx, "Processing request",
		slog.String("request_id", request.RequestContext.RequestID),
		slog.String("path", request.RequestContext.HTTP.Path),
	)

	res := &bufferedResponse{}
	functions.SimpleHTTP(ctx, functions.RequestFromFunctionURL(request), res)

	if !res.sent {
		logger.ErrorContext(ctx, "Function returned without sending a response",
			slog.String("request_id", request.RequestContext.RequestID),
		)
		return events.LambdaFunctionURLResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": contentTypeText},
			Body:       "Internal server error",
		}, nil
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": contentTypeText},
		Body:       res.body,
	}, nil
}

func main() {
	ctx := context.Background()

	result, err := awsinit.Init(ctx, awsinit.WithHTTPHandler("simple-http"))
	if err != nil {
		logger.Error("FATAL: Failed to initialize AWS",
			slog.String("error", err.Error()),
		)
		panic(err)
	}
	defer result.Cleanup()

	result.Start(handler)
}
