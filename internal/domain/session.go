package domain

// SessionState is a position in the capture-commit state machine:
// IDLE -> SAMPLING -> STAGED -> NAMING -> COMMITTED | DISCARDED -> IDLE.
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateSampling  SessionState = "sampling"
	StateStaged    SessionState = "staged"
	StateNaming    SessionState = "naming"
	StateCommitted SessionState = "committed"
	StateDiscarded SessionState = "discarded"
)

// Terminal reports whether the state ends a session.
func (s SessionState) Terminal() bool {
	return s == StateCommitted || s == StateDiscarded
}

// Discard reasons recorded in logs and outcomes.
const (
	ReasonSuperseded      = "superseded by a new sample"
	ReasonCaptureFailed   = "capture failed"
	ReasonNameCancelled   = "naming cancelled"
	ReasonNameEmpty       = "empty name"
	ReasonNameTimeout     = "naming timed out"
	ReasonNameRetries     = "too many name attempts"
	ReasonPromptFailed    = "naming prompt failed"
	ReasonPromoteFailed   = "promote failed"
	ReasonOperatorDiscard = "discarded by operator"
)

// Outcome is the terminal result of a session.
type Outcome struct {
	State     SessionState
	SessionID string
	Name      string
	Path      string
	Reason    string
	Bundle    *SampleBundle
	Attempts  int
}

// Committed reports whether the bundle was promoted.
func (o Outcome) Committed() bool {
	return o.State == StateCommitted
}
