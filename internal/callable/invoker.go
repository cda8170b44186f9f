package callable

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/trigger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaClient defines the interface for Lambda operations
type LambdaClient interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Invoker calls deployed callable functions via AWS Lambda
type Invoker struct {
	client LambdaClient
}

// NewInvoker creates a new Lambda invoker
func NewInvoker(client LambdaClient) *Invoker {
	return &Invoker{client: client}
}

// Call invokes function with data and returns the raw result.
// A callable error in the response is returned as *Error.
func (i *Invoker) Call(ctx context.Context, function string, data any, auth *trigger.AuthContext) (json.RawMessage, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}

	payload, err := json.Marshal(Request{Data: encoded, Auth: auth})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := i.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(function),
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("lambda invocation failed: %w", err)
	}

	// Unhandled function errors come back with a 200 and FunctionError set
	if output.FunctionError != nil {
		return nil, fmt.Errorf("function %s failed (%s): %s", function, *output.FunctionError, string(output.Payload))
	}

	var response Response
	if err := json.Unmarshal(output.Payload, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	return response.Result, nil
}

// Invoke calls function and decodes its result into Resp
func Invoke[Resp any](ctx context.Context, i *Invoker, function string, data any, auth *trigger.AuthContext) (Resp, error) {
	var out Resp
	raw, err := i.Call(ctx, function, data, auth)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return out, nil
}
