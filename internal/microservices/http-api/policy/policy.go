// Package policy decides who may do what. Decisions are pure functions of the
// caller, the resource kind, the action and whether the caller owns the object.
package policy

import "yamdb/internal/microservices/http-api/models"

type Resource int

const (
	// Catalog covers categories, genres and titles.
	Catalog Resource = iota
	// Content covers reviews and comments.
	Content
	// Users is user management by administrators.
	Users
	// Profile is the caller's own account.
	Profile
)

type Action int

const (
	Read Action = iota
	Create
	Update
	Delete
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Allow Decision = iota
	// Unauthenticated means the action needs a caller and there is none (401).
	Unauthenticated
	// Forbidden means the caller is known but not entitled (403).
	Forbidden
)

// Subject is the caller as seen by the policy. The zero value is anonymous.
type Subject struct {
	Authenticated bool
	Role          models.Role
	Superuser     bool
}

// SubjectOf builds a Subject from a resolved user; nil yields an anonymous subject.
func SubjectOf(u *models.User) Subject {
	if u == nil {
		return Subject{}
	}
	return Subject{Authenticated: true, Role: u.Role, Superuser: u.IsSuperuser}
}

func (s Subject) isAdmin() bool {
	return s.Authenticated && (s.Superuser || s.Role == models.RoleAdmin)
}

func (s Subject) atLeast(r models.Role) bool {
	return s.isAdmin() || (s.Authenticated && s.Role.AtLeast(r))
}

// Decide applies the rules. isOwner only matters for Content updates and deletes.
func Decide(s Subject, res Resource, act Action, isOwner bool) Decision {
	switch res {
	case Catalog:
		if act == Read {
			return Allow
		}
		return requireAdmin(s)

	case Content:
		switch act {
		case Read:
			return Allow
		case Create:
			return requireAuth(s)
		default:
			if !s.Authenticated {
				return Unauthenticated
			}
			if isOwner || s.atLeast(models.RoleModerator) {
				return Allow
			}
			return Forbidden
		}

	case Users:
		return requireAdmin(s)

	case Profile:
		return requireAuth(s)
	}
	return Forbidden
}

func requireAuth(s Subject) Decision {
	if !s.Authenticated {
		return Unauthenticated
	}
	return Allow
}

func requireAdmin(s Subject) Decision {
	if !s.Authenticated {
		return Unauthenticated
	}
	if s.isAdmin() {
		return Allow
	}
	return Forbidden
}
