package domain

import "github.com/m04kA/UCA-AdvisoryService/pkg/types"

// CandidateSlot represents a bookable 30-minute interval derived from an
// advisor's availability window, before conflict annotation
type CandidateSlot struct {
	Start types.TimeString
	End   types.TimeString
}
