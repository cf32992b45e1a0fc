package auth

import "strings"

// Subject is what the policy needs to know about an account at decision time.
// IsAdmin is the stored profile flag, read fresh for every decision.
type Subject struct {
	Email   string
	IsAdmin bool
}

// Policy is the single authority for admin and owner decisions.
type Policy struct {
	ownerEmail string
}

// NewPolicy creates a policy protecting the account registered with ownerEmail.
func NewPolicy(ownerEmail string) *Policy {
	return &Policy{ownerEmail: strings.TrimSpace(ownerEmail)}
}

// IsOwner reports whether email belongs to the owner. The comparison ignores case.
func (p *Policy) IsOwner(email string) bool {
	if p.ownerEmail == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(email), p.ownerEmail)
}

// IsAdmin reports whether s holds admin capability.
// The owner is always an admin, whatever the stored flag says.
func (p *Policy) IsAdmin(s Subject) bool {
	return s.IsAdmin || p.IsOwner(s.Email)
}

// CanSetAdminFlag reports whether actor may set target's admin flag to newValue.
// Nobody can remove the owner's admin status, the owner included.
func (p *Policy) CanSetAdminFlag(actor, target Subject, newValue bool) bool {
	if !p.IsAdmin(actor) {
		return false
	}
	if p.IsOwner(target.Email) && !newValue {
		return false
	}
	return true
}

// CanDeleteProfile reports whether actor may delete target. The owner can never be deleted.
func (p *Policy) CanDeleteProfile(actor, target Subject) bool {
	if !p.IsAdmin(actor) {
		return false
	}
	return !p.IsOwner(target.Email)
}
