package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/config"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/aws/aws-lambda-go/events"
	"github.com/jarrod-lowe/jmap-service-libs/awsinit"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
	"github.com/jarrod-lowe/jmap-service-libs/tracing"
	"go.opentelemetry.io/otel/attribute"
)

var logger = logging.New()

var lowercase = trigger.MustParsePattern(functions.LowercasePattern)

// Dependencies for handler (injectable for testing)
type Dependencies struct {
	Docs functions.DocumentWriter
}

var deps *Dependencies

// handler processes DynamoDB Streams events for the document table
func handler(ctx context.Context, event events.DynamoDBEvent) error {
	ctx, span := tracing.StartHandlerSpan(ctx, "DocumentUppercaseHandler",
		tracing.Function("document-uppercase"),
		attribute.Int("records", len(event.Records)),
	)
	defer span.End()

	dispatch := trigger.DocumentCreated(lowercase, functions.New(deps.Docs).UppercaseOnCreate)
	if err := dispatch(ctx, event); err != nil {
		tracing.RecordError(span, err)
		return err
	}
	return nil
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

	cfg, err := config.FromLookup(os.LookupEnv)
	if err != nil {
		logger.Error("FATAL: Invalid configuration",
			slog.String("error", err.Error()),
		)
		panic(err)
	}

	deps = &Dependencies{
		Docs: docstore.NewClient(result.Config, cfg.Table, cfg.Endpoint),
	}

	result.Start(handler)
}
