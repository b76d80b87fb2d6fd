package entities

import "fmt"

// AmbiguousIdentityError reports two source records that normalize to the
// same identity with conflicting category or subtype. The conflict is
// surfaced for manual resolution, never merged silently.
type AmbiguousIdentityError struct {
	Name        string
	Existing    Identity
	Conflicting Identity
}

func (e *AmbiguousIdentityError) Error() string {
	return fmt.Sprintf("ambiguous identity for %q: %s conflicts with %s",
		e.Name, e.Conflicting, e.Existing)
}

// MalformedRecordError reports a source record missing a required field
type MalformedRecordError struct {
	Source string
	Record string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record in %s (%s): %s", e.Source, e.Record, e.Reason)
}

// CapacityError reports an exhausted per-category drawer range. Allocation
// never spills into another category's range.
type CapacityError struct {
	Category  Category
	Needed    int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded for %s: need %d drawers, %d available",
		e.Category, e.Needed, e.Available)
}

// UnmatchedError reports a free-text name that scored below the fuzzy-match
// acceptance threshold against every candidate.
type UnmatchedError struct {
	Name      string
	Category  Category
	BestScore float64
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("no match for %q (category %s, best score %.2f)",
		e.Name, e.Category, e.BestScore)
}

// UnresolvedLocationError reports an identity with no assigned storage slot
type UnresolvedLocationError struct {
	Identity Identity
}

func (e *UnresolvedLocationError) Error() string {
	return fmt.Sprintf("no location assigned for %s", e.Identity)
}

// RemoteUnavailableError reports that the inventory system stayed
// unreachable after the bounded retry budget was spent.
type RemoteUnavailableError struct {
	Endpoint string
	Attempts int
	Err      error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("inventory system unavailable at %s after %d attempts: %v",
		e.Endpoint, e.Attempts, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Err
}
