// Package authz holds the two authorization layers: the edge check, a pure
// function of route and role, and the resource check, which also looks at who
// owns the record being touched.
package authz

import (
	"strings"

	"github.com/eaglebank/expense-ledger/shared/errs"
	"github.com/eaglebank/expense-ledger/shared/models"
)

// Rule grants a route prefix to a set of roles.
type Rule struct {
	Prefix string
	Roles  []models.Role
}

// Policy is the static edge table. Routes matching no rule are allowed.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy gates user management at the edge. Transaction, activity-log
// and dashboard routes are open to any authenticated role and scoped by
// Authorize and ScopeFor.
func DefaultPolicy() *Policy {
	return NewPolicy(
		Rule{Prefix: "/users", Roles: []models.Role{models.RoleAdmin, models.RoleOwner}},
	)
}

func (p *Policy) Allow(path string, role models.Role) bool {
	for _, rule := range p.rules {
		if matchPrefix(path, rule.Prefix) {
			return hasRole(rule.Roles, role)
		}
	}
	return true
}

func matchPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

type Action string

const (
	ListAllTransactions Action = "transaction:list-all"
	UpdateTransaction   Action = "transaction:update"
	DeleteTransaction   Action = "transaction:delete"
	ListAllActivity     Action = "activity:list-all"
	GlobalDashboard     Action = "dashboard:global"
	ManageUsers         Action = "user:manage"
)

// elevated lists, per action, the roles that may act on records they do not own.
var elevated = map[Action][]models.Role{
	ListAllTransactions: {models.RoleOwner},
	UpdateTransaction:   {models.RoleAdmin, models.RoleOwner},
	DeleteTransaction:   {models.RoleAdmin, models.RoleOwner},
	ListAllActivity:     {models.RoleOwner},
	GlobalDashboard:     {models.RoleOwner},
	ManageUsers:         {models.RoleOwner},
}

var denied = map[Action]string{
	ListAllTransactions: "You are not authorized to view other users' transactions",
	UpdateTransaction:   "You are not authorized to update this transaction",
	DeleteTransaction:   "You are not authorized to delete this transaction",
	ListAllActivity:     "You are not authorized to view other users' activity",
	GlobalDashboard:     "You are not authorized to view the global dashboard",
	ManageUsers:         "Unauthorized. Only owners can manage users",
}

// Resource names an action and, when the action targets a record, its owner.
// OwnerID 0 means the action has no single owner.
type Resource struct {
	Action  Action
	OwnerID int64
}

// Authorize is the resource check. The caller passes when it holds an elevated
// role for the action or owns the record.
func Authorize(id models.Identity, res Resource) error {
	if IsElevated(id.Role, res.Action) {
		return nil
	}
	if res.OwnerID != 0 && res.OwnerID == id.ID {
		return nil
	}
	msg, ok := denied[res.Action]
	if !ok {
		msg = "Forbidden: Insufficient permissions"
	}
	return errs.Forbidden(msg)
}

func IsElevated(role models.Role, action Action) bool {
	return hasRole(elevated[action], role)
}

// ScopeFor resolves which owners a read may see. Elevated callers get the
// requested user, or everyone when target is 0. Anyone else is pinned to
// themselves and the target is ignored.
func ScopeFor(id models.Identity, action Action, target int64) models.Scope {
	if !IsElevated(id.Role, action) {
		return models.OwnedBy(id.ID)
	}
	if target > 0 {
		return models.OwnedBy(target)
	}
	return models.AllUsers()
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
