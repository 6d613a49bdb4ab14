// Package mapview drives the location-grouped view of postings.
//
// Phases:
//
//	Idle ──► LoadingSummary ──► SummaryLoaded ──► LoadingLocationJobs ──► LocationJobsLoaded
//
// Either loading phase may end in Failed. Changing country or timeframe
// returns to LoadingSummary from any phase and drops the selected location.
package mapview

import "fmt"

type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseLoadingSummary     Phase = "loading_summary"
	PhaseSummaryLoaded      Phase = "summary_loaded"
	PhaseLoadingLocation    Phase = "loading_location_jobs"
	PhaseLocationJobsLoaded Phase = "location_jobs_loaded"
	PhaseFailed             Phase = "failed"
)

var validTransitions = map[Phase][]Phase{
	PhaseIdle:               {PhaseLoadingSummary},
	PhaseLoadingSummary:     {PhaseLoadingSummary, PhaseSummaryLoaded, PhaseFailed},
	PhaseSummaryLoaded:      {PhaseLoadingSummary, PhaseLoadingLocation},
	PhaseLoadingLocation:    {PhaseLoadingSummary, PhaseLoadingLocation, PhaseLocationJobsLoaded, PhaseFailed},
	PhaseLocationJobsLoaded: {PhaseLoadingSummary, PhaseLoadingLocation, PhaseSummaryLoaded},
	PhaseFailed:             {PhaseLoadingSummary, PhaseLoadingLocation},
}

func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if _, ok := validTransitions[p]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown map phase %q", s)
}

// IsTransitionAllowed reports whether the view may move from one phase to another.
func IsTransitionAllowed(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
