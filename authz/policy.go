// Package authz is the authorization policy: pure functions mapping an actor
// and a resource to an allow/deny decision. Denials are values, not errors —
// every mutating service method returns a Decision and the handler renders a
// denial as a 403 envelope.
package authz

import "delivery-backend/models"

// Actor is the authenticated caller, as extracted from token claims.
type Actor struct {
	ID       uint
	Username string
	Role     models.Role
}

// Decision is the outcome of a policy check.
type Decision struct {
	allowed bool
	reason  string
}

func Allow() Decision { return Decision{allowed: true} }

func Deny(reason string) Decision { return Decision{reason: reason} }

func (d Decision) Allowed() bool { return d.allowed }

// Reason returns the denial reason; empty when allowed.
func (d Decision) Reason() string { return d.reason }

// RequireRole allows the actor when its role is in the allowed set.
func RequireRole(actor Actor, reason string, allowed ...models.Role) Decision {
	for _, r := range allowed {
		if actor.Role == r {
			return Allow()
		}
	}
	return Deny(reason)
}

// RequireOwnerOr allows the actor when it owns the resource or its role is in
// the privileged set.
func RequireOwnerOr(actor Actor, ownerID uint, reason string, privileged ...models.Role) Decision {
	if actor.ID == ownerID {
		return Allow()
	}
	return RequireRole(actor, reason, privileged...)
}

// RequireRankOver denies an actor whose role is not strictly above the
// target's, unless the actor is the target. Blocks a MANAGER from mutating a
// MASTER account even though MANAGER is nominally privileged.
func RequireRankOver(actor Actor, targetID uint, targetRole models.Role, reason string) Decision {
	if actor.ID == targetID {
		return Allow()
	}
	if targetRole.RankAbove(actor.Role) {
		return Deny(reason)
	}
	return Allow()
}
