package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/callable"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

func TestHandler_ReturnsSum(t *testing.T) {
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID: "test-req-123",
	})

	resp, err := handler(ctx, callable.Request{Data: json.RawMessage(`{"a":2,"b":3.5}`)})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected callable error: %v", resp.Error)
	}

	var result struct {
		C float64 `json:"c"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if result.C != 5.5 {
		t.Errorf("expected c=5.5, got %v", result.C)
	}
}

func TestHandler_NonNumericInput(t *testing.T) {
	resp, err := handler(context.Background(), callable.Request{Data: json.RawMessage(`{"a":"x","b":1}`)})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("expected callable error for non-numeric input")
	}
	if resp.Error.Status != callable.StatusInvalidArgument {
		t.Errorf("expected status INVALID_ARGUMENT, got %s", resp.Error.Status)
	}
}

func TestHandler_EnvelopeShape(t *testing.T) {
	resp, _ := handler(context.Background(), callable.Request{Data: json.RawMessage(`{"a":1,"b":1}`)})

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}
	if string(body) != `{"result":{"c":2}}` {
		t.Errorf("expected envelope {\"result\":{\"c\":2}}, got %s", body)
	}
}
