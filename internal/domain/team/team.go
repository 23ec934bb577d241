// Package team defines the Team entity and its membership invariants.
package team

import (
	"slices"
	"strings"
	"time"

	"github.com/edulab/projhub/internal/domain"
)

// MaxMembers is the membership cap enforced on every join.
const MaxMembers = 5

// Team is a student group. MemberIDs preserves join order and never contains
// duplicates; the team store additionally guarantees that a user id appears
// in at most one team's MemberIDs at any time.
type Team struct {
	ID          string
	Name        string
	Description string
	MemberIDs   []string
	MentorID    string
	CreatedAt   time.Time
}

// Validate checks business rules for the Team entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Team) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(t.Description) == "" {
		fields["description"] = domain.MsgRequired
	}
	if len(t.MemberIDs) > MaxMembers {
		fields["member_ids"] = "exceeds member cap"
	}
	if hasDuplicates(t.MemberIDs) {
		fields["member_ids"] = "contains duplicate user ids"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// HasMember reports whether the given user id is currently a member.
func (t *Team) HasMember(userID string) bool {
	return slices.Contains(t.MemberIDs, userID)
}

// IsFull reports whether the team has reached the membership cap.
func (t *Team) IsFull() bool {
	return len(t.MemberIDs) >= MaxMembers
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
