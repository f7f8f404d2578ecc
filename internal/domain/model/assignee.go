package model

import "strings"

// rolePrefix marks member ids that stand for a coordinator role rather than
// a registered person. Parsing happens once at the API boundary; the engine
// itself stores opaque member ids and never inspects prefixes.
const rolePrefix = "role-"

// AssigneeKind discriminates the Assignee union.
type AssigneeKind int

// Assignee kinds.
const (
	AssigneePerson AssigneeKind = iota
	AssigneeRole
)

// Assignee is a slot member: either a registered person referenced by id or
// a named role tag such as "coordinator".
type Assignee struct {
	Kind AssigneeKind
	// ID is the person id for AssigneePerson, the role tag for AssigneeRole.
	ID string
}

// ParseAssignee classifies a raw member id from the wire or from stored
// snapshots.
func ParseAssignee(raw string) Assignee {
	if tag, ok := strings.CutPrefix(raw, rolePrefix); ok {
		return Assignee{Kind: AssigneeRole, ID: tag}
	}
	return Assignee{Kind: AssigneePerson, ID: raw}
}

// MemberID returns the id as stored in a slot's member list.
func (a Assignee) MemberID() string {
	if a.Kind == AssigneeRole {
		return rolePrefix + a.ID
	}
	return a.ID
}

// DisplayName renders a human-readable name for role assignees, e.g.
// "breaktime-coordinator" becomes "Breaktime Coordinator". Person assignees
// resolve their names from the snapshot, not here.
func (a Assignee) DisplayName() string {
	if a.Kind != AssigneeRole {
		return a.ID
	}
	words := strings.Split(a.ID, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
