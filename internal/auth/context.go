package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/tiendago/ventas-online/internal/model"
)

const userContextKey = "authUser"

func SetUser(c *gin.Context, u *model.User) {
	c.Set(userContextKey, u)
}

// UserFromContext returns the authenticated caller placed in the request
// context by RequireAuth.
func UserFromContext(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	u, ok := val.(*model.User)
	return u, ok
}
