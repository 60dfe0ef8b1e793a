package domain

import (
	"context"

	"dockit/internal/core/interpret"
)

// InterpreterPort runs the text interpretation pipeline
type InterpreterPort interface {
	Interpret(ctx context.Context, freeText string) interpret.Result
}

// PricerPort resolves material unit prices for a customer
type PricerPort interface {
	Price(customerKey, articleRef string) float64
}

// ServicePort is the quote surface exposed for cross module lookups
type ServicePort interface {
	MakeDraft(ctx context.Context, in DraftInput) DraftResult
	Interpret(ctx context.Context, freeText string) interpret.Result
}
