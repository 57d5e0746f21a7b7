package auth

import (
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
)

type Action string

const (
	ActionUserEdit   Action = "user.edit"
	ActionUserDelete Action = "user.delete"
)

type policyFunc func(caller, target *model.User) error

// policies maps an admin action on a target user account to the ownership
// rule it must satisfy. Evaluated once per request, before the handler body.
var policies = map[Action]policyFunc{
	ActionUserEdit: func(caller, target *model.User) error {
		if caller.ID != target.ID && caller.IsAdmin() && target.IsAdmin() {
			return httperrors.NewForbidden("an ADMIN cannot edit another ADMIN")
		}
		return nil
	},
	ActionUserDelete: func(caller, target *model.User) error {
		if !target.Status {
			return httperrors.NewDomain("user is already deleted")
		}
		if caller.ID != target.ID && caller.IsAdmin() && target.IsAdmin() {
			return httperrors.NewForbidden("an ADMIN cannot delete another ADMIN")
		}
		return nil
	},
}

// Authorize evaluates the policy for action against the caller/target pair.
func Authorize(action Action, caller, target *model.User) error {
	policy, ok := policies[action]
	if !ok {
		return httperrors.NewForbidden("unknown action")
	}
	return policy(caller, target)
}
