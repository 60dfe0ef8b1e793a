// Package domain defines the quote service types and ports
package domain

import (
	"dockit/internal/core/interpret"
	"dockit/internal/core/rot"
)

// DraftInput is the draft request payload
type DraftInput struct {
	CustomerName  string      `json:"customer_name" validate:"required,min=1"`
	CustomerEmail string      `json:"customer_email" validate:"omitempty,email"`
	JobSummary    string      `json:"job_summary" validate:"omitempty,max=10000"`
	HourlyRate    float64     `json:"hourly_rate" validate:"omitempty,gte=0"`
	ApplyRot      bool        `json:"apply_rot"`
	Lines         []LineInput `json:"lines" validate:"omitempty,dive"`
}

// LineInput is a pre-built line supplied by the caller instead of
// interpretation output
type LineInput struct {
	Kind        string  `json:"kind" validate:"required,oneof=work material"`
	Ref         string  `json:"ref"`
	Description string  `json:"description"`
	Quantity    float64 `json:"qty" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price_sek" validate:"gte=0"`
}

// InterpretInput is the raw interpretation debug payload
type InterpretInput struct {
	FreeText string `json:"free_text" validate:"required,min=1,max=10000"`
}

// DraftResult is the computed quote draft
type DraftResult struct {
	ID                   string            `json:"id"`
	Title                string            `json:"title"`
	CustomerName         string            `json:"customer_name"`
	SubtotalSEK          float64           `json:"subtotal_sek"`
	RotDiscountSEK       float64           `json:"rot_discount_sek"`
	TotalSEK             float64           `json:"total_sek"`
	HourlyRateSEK        float64           `json:"hourly_rate_sek"`
	InterpretedWorkHours float64           `json:"interpreted_work_hours"`
	Lines                []rot.Line        `json:"lines"`
	RotSummary           *rot.Summary      `json:"rot_summary,omitempty"`
	Interpretation       *interpret.Result `json:"interpretation,omitempty"`
}
