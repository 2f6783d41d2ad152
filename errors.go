package zorkvm

import "fmt"

// UnknownIDError is returned by item/location/global lookups for an ID that
// does not exist in the current GameState (spec §4.1).
type UnknownIDError struct {
	Kind string
	ID   fmt.Stringer
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("zorkvm: unknown %s: %s", e.Kind, e.ID)
}

// CommitError is returned when a StateChange fails a structural precondition
// (unknown target, containment cycle, capacity violation) during apply.
// Spec §4.1: "Parent changes are the only operation that may reject for
// containment reasons."
type CommitError struct {
	Change StateChange
	Reason string
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("zorkvm: commit failed: %s", e.Reason)
}

// ValidationError wraps a CommitError that aborted an entire batch. Spec §7:
// "Engine bug or misauthored content; rolled back, logged, surfaced as a
// generic message to the player and as a fatal diagnostic to the host."
type ValidationError struct {
	Batch []StateChange
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("zorkvm: validation error in batch of %d change(s): %s", len(e.Batch), e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseErrorKind discriminates the three ParseError kinds from spec §7.
type ParseErrorKind uint8

const (
	NotUnderstood ParseErrorKind = iota
	AmbiguousReference
	UnknownVerb
)

// ParseError is surfaced to the player; per spec §7 the turn is not charged.
type ParseError struct {
	Kind       ParseErrorKind
	Candidates []EntityReference
	Raw        string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case AmbiguousReference:
		return "Which one do you mean?"
	case UnknownVerb:
		return fmt.Sprintf("I don't know the verb \"%s\".", e.Raw)
	default:
		return "I don't understand that."
	}
}

// Disambiguate constructs a ParseError requesting the player choose among candidates.
func Disambiguate(candidates []EntityReference) *ParseError {
	return &ParseError{Kind: AmbiguousReference, Candidates: candidates}
}
