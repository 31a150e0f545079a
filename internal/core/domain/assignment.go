package domain

import (
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
)

// AssignmentKind discriminates the two assignment variants.
type AssignmentKind string

const (
	// AssignmentPermanent stays active until explicitly revoked.
	AssignmentPermanent AssignmentKind = "PERMANENT"
	// AssignmentTemporary stays active until its expiration instant passes.
	AssignmentTemporary AssignmentKind = "TEMPORARY"
)

// AssignmentMetadata carries the audit trail of a grant.
type AssignmentMetadata struct {
	AssignedBy string
	AssignedAt time.Time
	Reason     string
}

// NewMetadata stamps the grant with the clock's current instant.
func NewMetadata(assignedBy, reason string, clock Clock) AssignmentMetadata {
	if clock == nil {
		clock = SystemClock
	}
	return AssignmentMetadata{AssignedBy: assignedBy, AssignedAt: clock(), Reason: reason}
}

// Format renders the metadata for display.
func (m AssignmentMetadata) Format() string {
	s := fmt.Sprintf("Assigned by %s at %s", m.AssignedBy, m.AssignedAt.Format("2006-01-02 15:04"))
	if m.Reason != "" {
		s += "\nReason: " + m.Reason
	}
	return s
}

// RoleAssignment links one user to one role. It is a tagged union over the
// permanent variant (a one-way revoked latch) and the temporary variant
// (activity derived from the clock against expiresAt on every evaluation).
// Equality is identity-based, by generated id.
type RoleAssignment struct {
	id       string
	kind     AssignmentKind
	user     User
	role     *Role
	metadata AssignmentMetadata
	clock    Clock

	// permanent variant
	revoked bool

	// temporary variant
	expiresAt time.Time
	autoRenew bool
}

// NewPermanentAssignment grants a role until it is explicitly revoked.
func NewPermanentAssignment(user User, role *Role, metadata AssignmentMetadata, clock Clock) (*RoleAssignment, error) {
	return newAssignment(AssignmentPermanent, user, role, metadata, clock, time.Time{}, false)
}

// NewTemporaryAssignment grants a role until the expiration instant. An
// expiration already in the past is accepted and yields an assignment that is
// inactive from the start.
func NewTemporaryAssignment(user User, role *Role, metadata AssignmentMetadata, expiresAt time.Time, autoRenew bool, clock Clock) (*RoleAssignment, error) {
	if expiresAt.IsZero() {
		return nil, fmt.Errorf("%w: expiration instant is required", ErrInvalidArgument)
	}
	return newAssignment(AssignmentTemporary, user, role, metadata, clock, expiresAt, autoRenew)
}

func newAssignment(kind AssignmentKind, user User, role *Role, metadata AssignmentMetadata, clock Clock, expiresAt time.Time, autoRenew bool) (*RoleAssignment, error) {
	if user.Username == "" {
		return nil, fmt.Errorf("%w: assignment user is required", ErrInvalidArgument)
	}
	if role == nil {
		return nil, fmt.Errorf("%w: assignment role is required", ErrInvalidArgument)
	}
	if clock == nil {
		clock = SystemClock
	}

	return &RoleAssignment{
		id:        "assign_" + uuid.NewString(),
		kind:      kind,
		user:      user,
		role:      role,
		metadata:  metadata,
		clock:     clock,
		expiresAt: expiresAt,
		autoRenew: autoRenew,
	}, nil
}

func (a *RoleAssignment) ID() string                   { return a.id }
func (a *RoleAssignment) Kind() AssignmentKind         { return a.kind }
func (a *RoleAssignment) User() User                   { return a.user }
func (a *RoleAssignment) Role() *Role                  { return a.role }
func (a *RoleAssignment) Metadata() AssignmentMetadata { return a.metadata }

// IsActive recomputes activity on every call. Permanent assignments are active
// until revoked; temporary ones are active while the clock reads before the
// expiration instant.
func (a *RoleAssignment) IsActive() bool {
	switch a.kind {
	case AssignmentTemporary:
		return !a.IsExpired()
	default:
		return !a.revoked
	}
}

// IsExpired reports whether a temporary assignment's expiration has passed.
// Permanent assignments never expire.
func (a *RoleAssignment) IsExpired() bool {
	if a.kind != AssignmentTemporary {
		return false
	}
	return a.clock().After(a.expiresAt)
}

// IsRevoked reports the permanent variant's latch.
func (a *RoleAssignment) IsRevoked() bool {
	return a.revoked
}

// Revoke latches a permanent assignment inactive. Revoking an already-revoked
// assignment is a no-op. Temporary assignments have no revoke transition;
// their only exit is expiration.
func (a *RoleAssignment) Revoke() error {
	if a.kind != AssignmentPermanent {
		return fmt.Errorf("%w: only permanent assignments can be revoked", ErrInvalidState)
	}
	a.revoked = true
	return nil
}

// Extend moves a temporary assignment's expiration to the end of the given
// ISO-8601 calendar date. The new date is deliberately not checked against the
// old expiration or the current time.
func (a *RoleAssignment) Extend(newExpirationDate string) error {
	if a.kind != AssignmentTemporary {
		return fmt.Errorf("%w: only temporary assignments can be extended", ErrInvalidState)
	}
	parsed, err := ParseExpirationDate(newExpirationDate)
	if err != nil {
		return err
	}
	a.expiresAt = parsed
	return nil
}

// ParseExpirationDate parses an ISO-8601 calendar date (yyyy-mm-dd) into an
// expiration instant at the start of that day, UTC.
func ParseExpirationDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in ISO-8601 format yyyy-mm-dd", ErrInvalidArgument)
	}
	return parsed, nil
}

// ExpiresAt returns the expiration instant; ok is false for permanent assignments.
func (a *RoleAssignment) ExpiresAt() (time.Time, bool) {
	if a.kind != AssignmentTemporary {
		return time.Time{}, false
	}
	return a.expiresAt, true
}

// AutoRenew reports the temporary variant's renewal flag.
func (a *RoleAssignment) AutoRenew() bool {
	return a.autoRenew
}

// TimeRemaining renders the expiration for display on temporary assignments.
func (a *RoleAssignment) TimeRemaining() string {
	if a.kind != AssignmentTemporary {
		return ""
	}
	return "Expires at " + a.expiresAt.Format("2006-01-02 15:04")
}

// Equal reports identity equality by generated id.
func (a *RoleAssignment) Equal(other *RoleAssignment) bool {
	return other != nil && a.id == other.id
}

// Summary renders a deterministic human-readable block describing the
// assignment. Temporary assignments append their expiration line.
func (a *RoleAssignment) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s assigned to %s by %s at %s",
		a.kind,
		a.role.Name(),
		a.user.Username,
		a.metadata.AssignedBy,
		a.metadata.AssignedAt.Format("2006-01-02 15:04"),
	)
	if a.metadata.Reason != "" {
		fmt.Fprintf(&sb, "\nReason: %s", a.metadata.Reason)
	}
	status := "INACTIVE"
	if a.IsActive() {
		status = "ACTIVE"
	}
	fmt.Fprintf(&sb, "\nStatus: %s", status)
	if a.kind == AssignmentTemporary {
		fmt.Fprintf(&sb, "\nExpiration: %s", a.expiresAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}
