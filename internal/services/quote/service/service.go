// Package service computes quote drafts from free text
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"dockit/internal/core/interpret"
	"dockit/internal/core/rot"
	"dockit/internal/platform/logger"
	"dockit/internal/services/quote/domain"
)

// DefaultHourlyRate applies when the payload carries no positive rate
const DefaultHourlyRate = 800.0

// Config tunes the draft computation
type Config struct {
	HourlyRate float64
	Rot        rot.Config
}

// Service builds priced quote drafts
type Service struct {
	interp domain.InterpreterPort
	pricer domain.PricerPort
	cfg    Config
	log    *logger.Logger
}

// New constructs the quote service
func New(interp domain.InterpreterPort, pricer domain.PricerPort, cfg Config) *Service {
	if cfg.HourlyRate <= 0 {
		cfg.HourlyRate = DefaultHourlyRate
	}
	if cfg.Rot == (rot.Config{}) {
		cfg.Rot = rot.DefaultConfig()
	}
	return &Service{
		interp: interp,
		pricer: pricer,
		cfg:    cfg,
		log:    logger.Named("quote"),
	}
}

// Interpret exposes the raw pipeline output, used by the debug endpoint
func (s *Service) Interpret(ctx context.Context, freeText string) interpret.Result {
	return s.interp.Interpret(ctx, freeText)
}

// MakeDraft computes a full quote draft:
// interpret the job summary, build work and material lines, price the
// materials, then apply the ROT discount when requested
func (s *Service) MakeDraft(ctx context.Context, in domain.DraftInput) domain.DraftResult {
	var interpretation *interpret.Result
	if summary := strings.TrimSpace(in.JobSummary); summary != "" {
		res := s.interp.Interpret(ctx, summary)
		interpretation = &res
	}

	rate := in.HourlyRate
	if rate <= 0 {
		rate = s.cfg.HourlyRate
	}

	var lines []rot.Line
	switch {
	case len(in.Lines) > 0:
		lines = s.linesFromPayload(in.Lines)
	case interpretation != nil:
		lines = append(
			s.workLines(interpretation.Tasks, rate),
			s.materialLines(interpretation.Tasks)...,
		)
	}

	// customer email is the primary pricing identity, name the fallback
	customerKey := strings.TrimSpace(in.CustomerEmail)
	if customerKey == "" {
		customerKey = strings.TrimSpace(in.CustomerName)
	}
	s.priceMaterials(lines, customerKey)

	subtotal := 0.0
	for _, l := range lines {
		subtotal += l.Quantity * l.UnitPrice
	}

	discount := 0.0
	var summary *rot.Summary
	if in.ApplyRot {
		updated, sum := rot.Apply(lines, s.cfg.Rot)
		lines = updated
		summary = &sum
		discount = sum.Amount
	}

	hours := 0.0
	if interpretation != nil {
		hours = interpretation.Totals.TotalHours
	}

	s.log.Info().
		Str("customer", in.CustomerName).
		Int("lines", len(lines)).
		Float64("subtotal", subtotal).
		Bool("rot", in.ApplyRot).
		Msg("draft computed")

	return domain.DraftResult{
		ID:                   uuid.NewString(),
		Title:                strings.TrimSpace("Preliminär offert för " + in.CustomerName),
		CustomerName:         in.CustomerName,
		SubtotalSEK:          subtotal,
		RotDiscountSEK:       discount,
		TotalSEK:             subtotal - discount,
		HourlyRateSEK:        rate,
		InterpretedWorkHours: hours,
		Lines:                lines,
		RotSummary:           summary,
		Interpretation:       interpretation,
	}
}

// workLines makes one work line per task. Resolved labor time sets the
// quantity in hours; tasks without time fall back to unit quantity
func (s *Service) workLines(tasks []interpret.TaskMatch, rate float64) []rot.Line {
	var lines []rot.Line
	for _, t := range tasks {
		qty := 1.0
		switch {
		case t.TotalMinutes != nil && *t.TotalMinutes > 0:
			qty = *t.TotalMinutes / 60.0
		case t.Quantity > 0:
			qty = t.Quantity
		}

		label := t.Label
		if label == "" {
			label = t.TaskID
		}

		lines = append(lines, rot.Line{
			Kind:        "work",
			Ref:         t.TaskID,
			Description: FormatDescription(label, t.TextSegment),
			Quantity:    qty,
			UnitPrice:   rate,
			Total:       qty * rate,
			RotEligible: true,
		})
	}
	return lines
}

// materialLines expands each task's material requirements, scaled by the
// task quantity. Prices come later via priceMaterials
func (s *Service) materialLines(tasks []interpret.TaskMatch) []rot.Line {
	var lines []rot.Line
	for _, t := range tasks {
		taskQty := t.Quantity
		if taskQty <= 0 {
			taskQty = 1.0
		}
		for _, m := range t.Materials {
			qty := taskQty
			if m.QuantityPerUnit > 0 {
				qty = m.QuantityPerUnit * taskQty
			}

			desc := m.Description
			if desc == "" {
				desc = "Material"
			}

			lines = append(lines, rot.Line{
				Kind:        "material",
				Ref:         m.Ref,
				Description: desc,
				Quantity:    qty,
			})
		}
	}
	return lines
}

func (s *Service) linesFromPayload(in []domain.LineInput) []rot.Line {
	var lines []rot.Line
	for _, l := range in {
		lines = append(lines, rot.Line{
			Kind:        l.Kind,
			Ref:         l.Ref,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Quantity * l.UnitPrice,
			RotEligible: l.Kind == "work",
		})
	}
	return lines
}

// priceMaterials fills unit prices on unpriced material lines and
// recomputes totals. Payload-supplied prices are kept as given
func (s *Service) priceMaterials(lines []rot.Line, customerKey string) {
	for i := range lines {
		l := &lines[i]
		if l.Kind == "material" && l.UnitPrice == 0 && l.Ref != "" && s.pricer != nil {
			l.UnitPrice = s.pricer.Price(customerKey, l.Ref)
		}
		l.Total = l.Quantity * l.UnitPrice
	}
}
