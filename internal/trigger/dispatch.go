package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/auth"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/spanattr"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
	"github.com/jarrod-lowe/jmap-service-libs/tracing"
	"go.opentelemetry.io/otel/trace"
)

var logger = logging.New()

// Cognito Post Confirmation trigger sources. Only sign-up confirmation
// creates a user; forgot-password confirmation reuses the same trigger.
const (
	TriggerSourceConfirmSignUp         = "PostConfirmation_ConfirmSignUp"
	TriggerSourceConfirmForgotPassword = "PostConfirmation_ConfirmForgotPassword"
)

const streamEventInsert = "INSERT"

// DocumentHandler handles a document-create event
type DocumentHandler func(ctx context.Context, snap docstore.Snapshot, ec EventContext) error

// UserHandler handles a user-create event
type UserHandler func(ctx context.Context, user auth.UserRecord, ec EventContext) error

// DocumentCreated adapts h to a DynamoDB Streams Lambda handler. Each INSERT
// record whose document path matches pattern is delivered with the captured
// wildcards in EventContext.Params. Processing stops at the first error.
func DocumentCreated(pattern Pattern, h DocumentHandler) func(context.Context, events.DynamoDBEvent) error {
	return func(ctx context.Context, event events.DynamoDBEvent) error {
		span := trace.SpanFromContext(ctx)

		for _, record := range event.Records {
			if record.EventName != streamEventInsert {
				continue
			}

			snap, err := docstore.SnapshotFromStreamImage(record.Change.NewImage)
			if err != nil {
				logger.WarnContext(ctx, "Skipping stream record that is not a document",
					slog.String("event_id", record.EventID),
					slog.String("error", err.Error()),
				)
				continue
			}

			path := snap.Ref().String()
			params, ok := pattern.Match(path)
			if !ok {
				continue
			}

			span.SetAttributes(spanattr.EventID(record.EventID), spanattr.DocumentPath(path))
			logger.InfoContext(ctx, "Dispatching document create",
				slog.String("event_id", record.EventID),
				slog.String("path", path),
				slog.String("pattern", pattern.String()),
			)

			ec := EventContext{
				EventID:   record.EventID,
				Timestamp: record.Change.ApproximateCreationDateTime.Time,
				EventType: EventTypeDocumentCreate,
				Resource:  path,
				Params:    params,
			}
			if err := h(ctx, snap, ec); err != nil {
				tracing.RecordError(span, err)
				logger.ErrorContext(ctx, "Document handler failed",
					slog.String("event_id", record.EventID),
					slog.String("path", path),
					slog.String("error", err.Error()),
				)
				return fmt.Errorf("handler failed for %s: %w", path, err)
			}
		}
		return nil
	}
}

// UserCreated adapts h to a Cognito Post Confirmation Lambda handler.
// The event is returned unchanged so Cognito completes the sign-up.
func UserCreated(h UserHandler) func(context.Context, events.CognitoEventUserPoolsPostConfirmation) (events.CognitoEventUserPoolsPostConfirmation, error) {
	return func(ctx context.Context, event events.CognitoEventUserPoolsPostConfirmation) (events.CognitoEventUserPoolsPostConfirmation, error) {
		if event.TriggerSource != TriggerSourceConfirmSignUp {
			logger.InfoContext(ctx, "Not a sign-up confirmation, skipping",
				slog.String("trigger_source", event.TriggerSource),
				slog.String("username", event.UserName),
			)
			return event, nil
		}

		user := auth.FromCognitoAttributes(event.UserName, event.Request.UserAttributes)
		span := trace.SpanFromContext(ctx)
		span.SetAttributes(spanattr.UserID(user.UID))

		ec := EventContext{
			EventID:   requestID(ctx),
			Timestamp: time.Now().UTC(),
			EventType: EventTypeUserCreate,
			Resource:  event.UserPoolID,
			Params:    map[string]string{},
		}

		logger.InfoContext(ctx, "Dispatching user create",
			slog.String("uid", user.UID),
			slog.String("user_pool_id", event.UserPoolID),
		)

		if err := h(ctx, user, ec); err != nil {
			tracing.RecordError(span, err)
			logger.ErrorContext(ctx, "User handler failed",
				slog.String("uid", user.UID),
				slog.String("error", err.Error()),
			)
			return event, fmt.Errorf("handler failed for user %s: %w", user.UID, err)
		}
		return event, nil
	}
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
