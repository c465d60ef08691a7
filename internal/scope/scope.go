// Package scope narrows entity queries to the rows a principal may access.
// Clients, applications, tasks, and reminders carry a direct broker column;
// documents are owned transitively through their client. Interview scripts are
// shared across the brokerage and are never broker-scoped.
package scope

import (
	"mortgauge/internal/apperr"
)

// Kind names an entity kind for scoping purposes.
type Kind string

const (
	KindClient      Kind = "client"
	KindApplication Kind = "application"
	KindDocument    Kind = "document"
	KindTask        Kind = "task"
	KindReminder    Kind = "reminder"
	KindScript      Kind = "interview_script"
)

// Anonymous is the principal id carried by unauthenticated requests.
const Anonymous = ""

// Scope is the row predicate handed to repositories. Exactly one of three
// states: All (unrestricted), BrokerID set (rows owned by that broker), or
// empty (matches nothing).
type Scope struct {
	BrokerID string
	All      bool
}

// Empty reports whether the scope matches no rows at all.
func (s Scope) Empty() bool { return !s.All && s.BrokerID == "" }

// Scoper resolves principals to scopes. The ownership policy is fixed at
// construction: the open (unscoped) mode exists for debug deployments only
// and is selected by a single configuration flag, never per request.
type Scoper struct {
	requireOwnership bool
}

// New returns a Scoper with the given ownership policy.
func New(requireOwnership bool) *Scoper {
	return &Scoper{requireOwnership: requireOwnership}
}

// For returns the scope for principal over the given entity kind. It is a
// pure function of its inputs. An unrecognized kind is a deployment defect.
func (sc *Scoper) For(principal string, k Kind) (Scope, error) {
	switch k {
	case KindClient, KindApplication, KindTask, KindReminder, KindDocument:
	case KindScript:
		// Scripts are brokerage-wide shared resources.
		return Scope{All: true}, nil
	default:
		return Scope{}, apperr.Configuration("unknown entity kind: " + string(k))
	}

	if !sc.requireOwnership {
		return Scope{All: true}, nil
	}
	if principal == Anonymous {
		return Scope{}, nil
	}
	return Scope{BrokerID: principal}, nil
}
