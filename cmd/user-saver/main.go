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
)

var logger = logging.New()

// Dependencies for handler (injectable for testing)
type Dependencies struct {
	Docs functions.DocumentWriter
}

var deps *Dependencies

// handler processes Cognito Post Confirmation trigger events
func handler(ctx context.Context, event events.CognitoEventUserPoolsPostConfirmation) (events.CognitoEventUserPoolsPostConfirmation, error) {
	ctx, span := tracing.StartHandlerSpan(ctx, "UserSaverHandler",
		tracing.Function("user-saver"),
	)
	defer span.End()

	dispatch := trigger.UserCreated(functions.New(deps.Docs).SaveUserOnCreate)
	out, err := dispatch(ctx, event)
	if err != nil {
		tracing.RecordError(span, err)
	}
	return out, err
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
