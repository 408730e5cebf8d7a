// Package policy decides whether an identity may perform an operation on
// a target entity. Evaluate is a pure function: it never mutates state
// and never touches the database, so every access rule lives in one
// place and is trivially testable.
package policy

import (
	"strings"

	"inkpress/database/model"
)

type Operation string

const (
	ViewPublic    Operation = "viewPublic"    // post list, single post, about, contact
	CreateComment Operation = "createComment" // any authenticated user
	ManagePost    Operation = "managePost"    // create/edit/delete, administrator only
	DeleteComment Operation = "deleteComment"
	ViewProfile   Operation = "viewProfile"   // self only
	DeleteAccount Operation = "deleteAccount" // self only
)

type Reason string

const (
	NotAuthenticated Reason = "notAuthenticated"
	Forbidden        Reason = "forbidden"
)

// Decision is the typed outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(r Reason) Decision {
	return Decision{Reason: r}
}

// Target carries the entity attributes a rule may depend on. Self-scoped
// operations compare against Username.
type Target struct {
	Username string
}

// Evaluate applies the access rules for op given the current user (nil
// means anonymous) and the target.
func Evaluate(user *model.User, op Operation, target Target) Decision {
	switch op {
	case ViewPublic:
		return Allow()

	case CreateComment:
		if user == nil {
			return Deny(NotAuthenticated)
		}
		return Allow()

	case ManagePost:
		if user == nil {
			return Deny(NotAuthenticated)
		}
		if !user.IsAdmin() {
			return Deny(Forbidden)
		}
		return Allow()

	case DeleteComment:
		// Anyone can delete any comment by id. Known gap in the access
		// rules, kept until they are revisited with product sign-off.
		return Allow()

	case ViewProfile, DeleteAccount:
		if user == nil || !strings.EqualFold(user.Username, target.Username) {
			return Deny(Forbidden)
		}
		return Allow()
	}

	return Deny(Forbidden)
}
