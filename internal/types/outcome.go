package types

// OutcomeCode classifies the terminal result of one catalog negotiation.
// The zero value means no negotiation took place.
type OutcomeCode int

const (
	// OutcomeApplied means the activation change was made and persisted.
	OutcomeApplied OutcomeCode = iota + 1
	// OutcomeAppliedNotPersisted means the change stands in memory but the
	// backing store could not be written (e.g. a read-only medium).
	OutcomeAppliedNotPersisted
	// OutcomeNotFound means the named channel does not exist in the catalog.
	// Nothing was mutated and nothing was written.
	OutcomeNotFound
	// OutcomeFailed means an unexpected error stopped the negotiation.
	OutcomeFailed
)

func (c OutcomeCode) String() string {
	switch c {
	case OutcomeApplied:
		return "applied"
	case OutcomeAppliedNotPersisted:
		return "applied_not_persisted"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// Outcome is built fresh per negotiation attempt and consumed immediately by
// the caller to pick the next user-facing action. It is never stored.
type Outcome struct {
	Code OutcomeCode
	// Reason carries the causing condition for OutcomeFailed, for display.
	Reason error
}

func Applied() Outcome             { return Outcome{Code: OutcomeApplied} }
func AppliedNotPersisted() Outcome { return Outcome{Code: OutcomeAppliedNotPersisted} }
func NotFound() Outcome            { return Outcome{Code: OutcomeNotFound} }
func Failed(reason error) Outcome  { return Outcome{Code: OutcomeFailed, Reason: reason} }

// Changed reports whether the in-memory activation flag was flipped,
// regardless of whether the flip was persisted.
func (o Outcome) Changed() bool {
	return o.Code == OutcomeApplied || o.Code == OutcomeAppliedNotPersisted
}
