// Package rot computes the capped, proportionally distributed labor-cost
// discount over a finalized set of quote lines.
//
// Shares are rounded per line to whole currency units. The sum of rounded
// shares may drift from the rounded total by a fraction of a unit per
// eligible line; that drift is accepted and never reconciled
package rot

import "math"

// Config holds the discount parameters
type Config struct {
	Rate         float64 `json:"rot_rate"`
	MaxPerPerson int     `json:"max_per_person_sek"`
	Persons      int     `json:"num_persons"`
}

// DefaultConfig mirrors the current Swedish scheme
func DefaultConfig() Config {
	return Config{Rate: 0.30, MaxPerPerson: 50_000, Persons: 1}
}

// MaxTotal is the discount ceiling across all persons
func (c Config) MaxTotal() int { return c.MaxPerPerson * c.Persons }

// Line is the slice of a quote line the apportioner needs
type Line struct {
	Kind          string  `json:"kind"`
	Ref           string  `json:"ref"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"qty"`
	UnitPrice     float64 `json:"unit_price_sek"`
	Total         float64 `json:"line_total_sek"`
	RotEligible   bool    `json:"is_rot_eligible"`
	RotShare      float64 `json:"rot_share_sek"`
	AfterDiscount float64 `json:"total_after_rot_sek"`
}

// Summary describes the applied discount for the whole quote
type Summary struct {
	Applied          bool    `json:"rot_applied"`
	Rate             float64 `json:"rot_rate"`
	Amount           float64 `json:"rot_amount_sek"`
	Limited          bool    `json:"rot_limited_by_max"`
	MaxTotal         int     `json:"max_total_rot_sek"`
	Persons          int     `json:"num_persons"`
	EligibleSubtotal float64 `json:"total_rot_eligible_work_sek"`
}

// Apply distributes the discount over eligible work lines.
// The input slice is not mutated; a new slice is returned.
// Non-eligible lines get a zero share and keep their original total
func Apply(lines []Line, cfg Config) ([]Line, Summary) {
	eligible := map[int]bool{}
	subtotal := 0.0
	for i, l := range lines {
		if l.Kind != "work" || !l.RotEligible || l.Total <= 0 {
			continue
		}
		eligible[i] = true
		subtotal += l.Total
	}

	none := Summary{
		Applied:  false,
		Rate:     cfg.Rate,
		Limited:  false,
		MaxTotal: cfg.MaxTotal(),
		Persons:  cfg.Persons,
	}

	if len(eligible) == 0 {
		return passthrough(lines), none
	}

	theoretical := subtotal * cfg.Rate
	maxTotal := float64(cfg.MaxTotal())
	amount := math.Min(theoretical, maxTotal)
	limited := amount < theoretical

	if amount <= 0 {
		return passthrough(lines), none
	}

	out := make([]Line, 0, len(lines))
	for i, l := range lines {
		if eligible[i] {
			share := math.Round(amount * (l.Total / subtotal))
			l.RotShare = share
			l.AfterDiscount = l.Total - share
		} else {
			l.RotShare = 0
			l.AfterDiscount = l.Total
		}
		out = append(out, l)
	}

	return out, Summary{
		Applied:          true,
		Rate:             cfg.Rate,
		Amount:           math.Round(amount),
		Limited:          limited,
		MaxTotal:         cfg.MaxTotal(),
		Persons:          cfg.Persons,
		EligibleSubtotal: subtotal,
	}
}

func passthrough(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		l.RotShare = 0
		l.AfterDiscount = l.Total
		out = append(out, l)
	}
	return out
}
