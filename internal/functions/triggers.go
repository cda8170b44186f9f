package functions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/auth"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/jarrod-lowe/jmap-service-libs/logging"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var logger = logging.New()

// UppercaseOnCreate copies a new /lowercase/{id} document's text field to
// /uppercase/{id}, upper-cased. The document ID comes from the event
// context, not from the snapshot. Upper-casing applies full Unicode case
// mapping, so "ß" becomes "SS".
func (s *Set) UppercaseOnCreate(ctx context.Context, snap docstore.Snapshot, ec trigger.EventContext) error {
	id, err := ec.Param("id")
	if err != nil {
		return err
	}

	text, err := snap.GetString("text")
	if err != nil {
		return fmt.Errorf("%w: text: %v", ErrFieldMissing, err)
	}

	target := docstore.Doc(UppercaseCollection, id)
	if err := s.docs.Set(ctx, target, map[string]any{"text": cases.Upper(language.Und).String(text)}); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	attrs := []any{slog.String("event_id", ec.EventID)}
	if !snap.Ref().IsZero() {
		attrs = append(attrs, slog.String("source", snap.Ref().String()))
	}
	attrs = append(attrs, slog.String("target", target.String()))
	logger.InfoContext(ctx, "Uppercased document", attrs...)
	return nil
}

// SaveUserOnCreate stores the profile of a newly created user at /users/{uid}
func (s *Set) SaveUserOnCreate(ctx context.Context, user auth.UserRecord, ec trigger.EventContext) error {
	if user.UID == "" {
		return ErrMissingUID
	}

	target := docstore.Doc(UsersCollection, user.UID)
	if err := s.docs.Set(ctx, target, auth.ProfileOf(user).Fields()); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	logger.InfoContext(ctx, "Saved user profile",
		slog.String("event_id", ec.EventID),
		slog.String("uid", user.UID),
	)
	return nil
}
