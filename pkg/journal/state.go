package journal

// State is the lifecycle state of a draft journal.
type State int

const (
	StateEmpty State = iota
	StatePartiallyFilled
	StateBalanced
	StateSubmitting
	StateSubmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePartiallyFilled:
		return "partially_filled"
	case StateBalanced:
		return "balanced"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type phase int

const (
	phaseDraft phase = iota
	phaseSubmitting
	phaseSubmitted
	phaseFailed
)

// State returns the draft's current state. Submitted and Failed last until
// the next edit, after which the state is derived from the draft again.
func (b *Builder) State() State {
	switch b.phase {
	case phaseSubmitting:
		return StateSubmitting
	case phaseSubmitted:
		return StateSubmitted
	case phaseFailed:
		return StateFailed
	}

	if b.header.IsZero() && len(b.debits) == 0 && len(b.credits) == 0 {
		return StateEmpty
	}
	if b.Ready() {
		return StateBalanced
	}
	return StatePartiallyFilled
}

// Ready reports whether the lines alone satisfy Submit: both buckets are
// non-empty, every amount is positive and the totals balance.
func (b *Builder) Ready() bool {
	if len(b.debits) == 0 || len(b.credits) == 0 {
		return false
	}
	for _, l := range b.debits {
		if !l.Magnitude.IsPositive() {
			return false
		}
	}
	for _, l := range b.credits {
		if !l.Magnitude.IsPositive() {
			return false
		}
	}
	return b.IsBalanced()
}
