// Package http provides http transport for quotes
package http

import (
	stdhttp "net/http"

	"dockit/internal/modkit/httpkit"
	"dockit/internal/services/quote/domain"
	svc "dockit/internal/services/quote/service"
)

// Register mounts quote endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.DraftInput](r, "/draft", h.draft)
	httpkit.PostJSON[domain.InterpretInput](r, "/interpret", h.interpret)
}

type handlers struct{ svc *svc.Service }

// swagger:route POST /quotes/draft Quotes quotesDraft
// @Summary Compute a priced quote draft from a job summary
// @Tags Quotes
// @Accept json
// @Produce json
// @Param payload body domain.DraftInput true "Draft request"
// @Success 200 {object} domain.DraftResult "ok"
// @Router /quotes/draft [post]
func (h *handlers) draft(r *stdhttp.Request, in domain.DraftInput) (any, error) {
	return h.svc.MakeDraft(r.Context(), in), nil
}

// swagger:route POST /quotes/interpret Quotes quotesInterpret
// @Summary Interpret free text into matched work tasks
// @Tags Quotes
// @Accept json
// @Produce json
// @Param payload body domain.InterpretInput true "Free text"
// @Success 200 {object} interpret.Result "ok"
// @Router /quotes/interpret [post]
func (h *handlers) interpret(r *stdhttp.Request, in domain.InterpretInput) (any, error) {
	return h.svc.Interpret(r.Context(), in.FreeText), nil
}
