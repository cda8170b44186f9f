package functions

import (
	"context"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/callable"
)

// SumRequest is the payload of SimpleCallable
type SumRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// SumResponse is the result of SimpleCallable
type SumResponse struct {
	C float64 `json:"c"`
}

// SimpleCallable adds two numbers
func SimpleCallable(ctx context.Context, data SumRequest, cc callable.CallContext) (SumResponse, error) {
	return SumResponse{C: data.A + data.B}, nil
}
