package orchestrator

import (
	"fmt"
	"time"
)

// Outcome is the final state of one candidate.
type Outcome string

const (
	SkippedIgnored   Outcome = "ignored"
	SkippedUnchanged Outcome = "unchanged"
	SkippedDeclined  Outcome = "declined"
	Renamed          Outcome = "renamed"
	SimulatedRenamed Outcome = "simulated"
)

// Plan is the decision taken for one candidate. Target is empty for
// SkippedIgnored and equals Source for SkippedUnchanged.
type Plan struct {
	Source  string
	Target  string
	Outcome Outcome
}

// Summary lists the candidates handled by a run, in order. After an abort it
// holds the candidates handled before the failing one.
type Summary struct {
	Plans     []Plan
	Renamed   int
	Simulated int
	Unchanged int
	Ignored   int
	Declined  int
	Duration  time.Duration
}

func newSummary() *Summary {
	return &Summary{Plans: make([]Plan, 0)}
}

func (s *Summary) add(p Plan) {
	s.Plans = append(s.Plans, p)
	switch p.Outcome {
	case Renamed:
		s.Renamed++
	case SimulatedRenamed:
		s.Simulated++
	case SkippedUnchanged:
		s.Unchanged++
	case SkippedIgnored:
		s.Ignored++
	case SkippedDeclined:
		s.Declined++
	}
}

// Total returns the number of candidates handled.
func (s *Summary) Total() int {
	return len(s.Plans)
}

// String returns a one-line summary.
func (s *Summary) String() string {
	return fmt.Sprintf("Processed %d files: %d renamed, %d simulated, %d unchanged, %d ignored, %d declined",
		s.Total(), s.Renamed, s.Simulated, s.Unchanged, s.Ignored, s.Declined)
}
