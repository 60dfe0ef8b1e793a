package module

import (
	"dockit/internal/core/rot"
	"dockit/internal/platform/config"
	quotesvc "dockit/internal/services/quote/service"
)

// Options controls draft pricing defaults
type Options struct {
	HourlyRate float64
	Rot        rot.Config
}

// FromConfig reads QUOTE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	qc := cfg.Prefix("QUOTE_")
	def := rot.DefaultConfig()
	return Options{
		HourlyRate: qc.MayFloat64("HOURLY_RATE", quotesvc.DefaultHourlyRate),
		Rot: rot.Config{
			Rate:         qc.MayFloat64("ROT_RATE", def.Rate),
			MaxPerPerson: qc.MayInt("ROT_MAX_PER_PERSON", def.MaxPerPerson),
			Persons:      qc.MayInt("ROT_PERSONS", def.Persons),
		},
	}
}
