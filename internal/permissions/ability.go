package permissions

import (
	"fmt"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

// Action is one of the closed set of operation kinds a grant can name.
// ActionManage is a wildcard covering every other action.
type Action string

const (
	ActionManage Action = "manage"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// SubjectAll is the wildcard subject covering every resource.
const SubjectAll = "all"

// ParseAction validates a raw action string against the closed enum.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionManage, ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Subject identifies the resource type a permission check targets. Domain
// entities implement it to resolve themselves to their canonical table name,
// and SubjectName lets callers pass a bare name instead of an instance.
type Subject interface {
	SubjectName() string
}

// SubjectName adapts a plain resource name string to the Subject interface.
type SubjectName string

func (s SubjectName) SubjectName() string {
	return string(s)
}

// Grant is a single stored (action, subject) pair granted to the actor's role.
type Grant struct {
	Action  Action `json:"action"`
	Subject string `json:"subject"`
}

// Matches reports whether the grant authorizes the requested pair, applying
// the manage/all wildcards.
func (g Grant) Matches(action Action, subject string) bool {
	if g.Action != ActionManage && g.Action != action {
		return false
	}
	return g.Subject == SubjectAll || g.Subject == subject
}

// Ability answers Can(action, subject) for one actor. It is built per request
// from the actor's freshly loaded role permissions and never cached across
// requests, so grant changes take effect on the next request.
type Ability struct {
	grants []Grant
}

// NewAbility collects the grant set from the user's role. A nil user, a user
// without a role, or a role without permissions yields an ability that denies
// everything.
func NewAbility(u *userDatamodel.User) *Ability {
	if u == nil || u.Role == nil {
		return &Ability{}
	}

	grants := make([]Grant, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		grants = append(grants, Grant{Action: Action(p.Action), Subject: p.Subject})
	}
	return &Ability{grants: grants}
}

// Can reports whether any grant matches the requested action and subject.
func (a *Ability) Can(action Action, subject Subject) bool {
	if subject == nil {
		return false
	}

	name := subject.SubjectName()
	for _, g := range a.grants {
		if g.Matches(action, name) {
			return true
		}
	}
	return false
}

// Grants returns a copy of the registered grant tuples.
func (a *Ability) Grants() []Grant {
	out := make([]Grant, len(a.grants))
	copy(out, a.grants)
	return out
}
