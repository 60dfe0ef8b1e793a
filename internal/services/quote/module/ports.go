package module

import (
	"context"

	"dockit/internal/core/interpret"
	quotedom "dockit/internal/services/quote/domain"
	quotesvc "dockit/internal/services/quote/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptQuotePort adapts the quote service to the domain port interface
type adaptQuotePort struct{ svc *quotesvc.Service }

// MakeDraft implements the domain ServicePort interface
func (a adaptQuotePort) MakeDraft(ctx context.Context, in quotedom.DraftInput) quotedom.DraftResult {
	return a.svc.MakeDraft(ctx, in)
}

// Interpret implements the domain ServicePort interface
func (a adaptQuotePort) Interpret(ctx context.Context, freeText string) interpret.Result {
	return a.svc.Interpret(ctx, freeText)
}
