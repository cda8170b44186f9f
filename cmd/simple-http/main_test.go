package main

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestHandler_EchoesText(t *testing.T) {
	otel.SetTracerProvider(noop.NewTracerProvider())

	request := events.LambdaFunctionURLRequest{
		RawQueryString: "text=hello%20world",
		RequestContext: events.LambdaFunctionURLRequestContext{
			RequestID: "test-request-id",
			HTTP: events.LambdaFunctionURLRequestContextHTTPDescription{
				Method: "GET",
				Path:   "/",
			},
		},
	}

	response, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if response.StatusCode != 200 {
		t.Errorf("expected status code 200, got %d", response.StatusCode)
	}
	if response.Body != "text: hello world" {
		t.Errorf("expected body 'text: hello world', got '%s'", response.Body)
	}
	if response.Headers["Content-Type"] != "text/plain; charset=utf-8" {
		t.Errorf("expected text/plain content type, got '%s'", response.Headers["Content-Type"])
	}
}

func TestHandler_MissingTextIsUndefined(t *testing.T) {
	otel.SetTracerProvider(noop.NewTracerProvider())

	request := events.LambdaFunctionURLRequest{
		RequestContext: events.LambdaFunctionURLRequestContext{
			RequestID: "test-request-id-2",
		},
	}

	response, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if response.Body != "text: undefined" {
		t.Errorf("expected body 'text: undefined', got '%s'", response.Body)
	}
}

func TestBufferedResponse_KeepsFirstSend(t *testing.T) {
	res := &bufferedResponse{}
	res.Send("first")
	res.Send("second")

	if res.body != "first" {
		t.Errorf("expected first body to be kept, got '%s'", res.body)
	}
}
