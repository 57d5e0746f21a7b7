package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
)

func mkUser(id, role string, status bool) *model.User {
	return &model.User{
		BaseModel: model.BaseModel{ID: id},
		Role:      role,
		Status:    status,
	}
}

func TestAuthorizeUserEdit(t *testing.T) {
	admin1 := mkUser("a1", model.RoleAdmin, true)
	admin2 := mkUser("a2", model.RoleAdmin, true)
	client := mkUser("c1", model.RoleClient, true)

	assert.NoError(t, Authorize(ActionUserEdit, admin1, client))
	assert.NoError(t, Authorize(ActionUserEdit, admin1, admin1), "editing yourself is always allowed")

	err := Authorize(ActionUserEdit, admin1, admin2)
	assert.True(t, httperrors.IsKind(err, httperrors.KindForbidden))
}

func TestAuthorizeUserDelete(t *testing.T) {
	admin1 := mkUser("a1", model.RoleAdmin, true)
	admin2 := mkUser("a2", model.RoleAdmin, true)
	client := mkUser("c1", model.RoleClient, true)
	gone := mkUser("c2", model.RoleClient, false)

	assert.NoError(t, Authorize(ActionUserDelete, admin1, client))

	err := Authorize(ActionUserDelete, admin1, admin2)
	assert.True(t, httperrors.IsKind(err, httperrors.KindForbidden))

	err = Authorize(ActionUserDelete, admin1, gone)
	assert.True(t, httperrors.IsKind(err, httperrors.KindDomain))
}

func TestAuthorizeUnknownAction(t *testing.T) {
	caller := mkUser("a1", model.RoleAdmin, true)
	err := Authorize(Action("user.frobnicate"), caller, caller)
	assert.True(t, httperrors.IsKind(err, httperrors.KindForbidden))
}
