package harness

import (
	"maps"
	"time"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/auth"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/docstore"
	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

const fakeRegion = "us-east-1"

// MakeDocumentSnapshot builds a snapshot holding data. refPath only labels
// the snapshot; handlers must take identifiers from the event context.
// An unparseable refPath leaves the snapshot without a path.
func MakeDocumentSnapshot(data map[string]any, refPath string) docstore.Snapshot {
	ref, _ := docstore.ParsePath(refPath)
	if data == nil {
		data = map[string]any{}
	}
	snap := docstore.NewSnapshot(ref, maps.Clone(data))
	now := time.Now().UTC()
	snap.CreateTime = now
	snap.UpdateTime = now
	return snap
}

// UserRecordFields are the identity fields a test sets on a fake user
type UserRecordFields struct {
	UID           string
	Email         string
	EmailVerified bool
	DisplayName   string
	PhotoURL      string
	PhoneNumber   string
	Disabled      bool
	PasswordHash  string
	PasswordSalt  string
	CustomClaims  map[string]any
	TenantID      string
	CreationTime  time.Time // now when zero
}

// MakeUserRecord builds a user record shaped like one the auth provider
// reports for a freshly created password account
func MakeUserRecord(f UserRecordFields) auth.UserRecord {
	created := f.CreationTime
	if created.IsZero() {
		created = time.Now().UTC()
	}

	u := auth.UserRecord{
		UID:           f.UID,
		Email:         f.Email,
		EmailVerified: f.EmailVerified,
		DisplayName:   f.DisplayName,
		PhotoURL:      f.PhotoURL,
		PhoneNumber:   f.PhoneNumber,
		Disabled:      f.Disabled,
		Metadata: auth.UserMetadata{
			CreationTime:   created,
			LastSignInTime: created,
		},
		PasswordHash: f.PasswordHash,
		PasswordSalt: f.PasswordSalt,
		CustomClaims: maps.Clone(f.CustomClaims),
		TenantID:     f.TenantID,
	}
	if f.Email != "" {
		u.ProviderData = []auth.UserInfo{{
			UID:         f.Email,
			ProviderID:  auth.ProviderIDPassword,
			Email:       f.Email,
			DisplayName: f.DisplayName,
			PhotoURL:    f.PhotoURL,
			PhoneNumber: f.PhoneNumber,
		}}
	}
	return u
}

// PostConfirmationEvent builds the Cognito event the platform delivers
// when user signs up
func PostConfirmationEvent(user auth.UserRecord, userPoolID string) events.CognitoEventUserPoolsPostConfirmation {
	var event events.CognitoEventUserPoolsPostConfirmation
	event.Version = "1"
	event.TriggerSource = trigger.TriggerSourceConfirmSignUp
	event.Region = fakeRegion
	event.UserPoolID = userPoolID
	event.UserName = user.UID
	event.Request.UserAttributes = user.CognitoAttributes()
	return event
}

// DocumentInsertEvent builds the stream event the platform delivers when
// the document at p is created with data
func DocumentInsertEvent(p docstore.Path, data map[string]any) (events.DynamoDBEvent, error) {
	now := time.Now().UTC()
	image, err := docstore.StreamImage(p, data, now)
	if err != nil {
		return events.DynamoDBEvent{}, err
	}
	return events.DynamoDBEvent{
		Records: []events.DynamoDBEventRecord{{
			EventID:      uuid.NewString(),
			EventName:    "INSERT",
			EventSource:  "aws:dynamodb",
			EventVersion: "1.1",
			AWSRegion:    fakeRegion,
			Change: events.DynamoDBStreamRecord{
				ApproximateCreationDateTime: events.SecondsEpochTime{Time: now},
				Keys:                        docstore.StreamKeys(p),
				NewImage:                    image,
				StreamViewType:              "NEW_IMAGE",
			},
		}},
	}, nil
}
