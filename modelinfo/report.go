package modelinfo

import (
	"github.com/google/uuid"
)

// ConversionReport pairs a Summary with a unique identifier for one
// conversion run, so external tooling (the CLI, logs) can correlate a
// report with the bytes it was produced from.
type ConversionReport struct {
	RunID   string
	Summary Summary
}

// NewConversionReport stamps a fresh run identifier onto a Summary.
func NewConversionReport(s Summary) ConversionReport {
	return ConversionReport{RunID: uuid.NewString(), Summary: s}
}
