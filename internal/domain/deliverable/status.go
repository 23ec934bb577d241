package deliverable

// Status represents the review state of a Deliverable.
//
// The review cycle is linear: a pending deliverable is submitted, the
// reviewer either approves it or sends it back for changes, and a
// needs_changes deliverable can be resubmitted.
type Status string

const (
	StatusPending      Status = "pending"
	StatusSubmitted    Status = "submitted"
	StatusNeedsChanges Status = "needs_changes"
	StatusApproved     Status = "approved"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusNeedsChanges, StatusApproved:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the review cycle permits moving from s to
// next. Approved is terminal; submission (pending or needs_changes →
// submitted) is handled by the submit operation, which always succeeds.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusSubmitted
	case StatusSubmitted:
		return next == StatusNeedsChanges || next == StatusApproved
	case StatusNeedsChanges:
		return next == StatusSubmitted
	case StatusApproved:
		return false
	default:
		return false
	}
}
