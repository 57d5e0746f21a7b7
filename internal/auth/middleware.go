package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

// UserFinder is the slice of the user repository the middleware needs to
// resolve token subjects into accounts.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type Middleware struct {
	tokens *TokenManager
	users  UserFinder
	logger *zap.Logger
}

func NewMiddleware(tokens *TokenManager, users UserFinder, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// RequireAuth verifies the bearer token and loads the caller. Soft-deleted
// accounts are rejected even when their token is still valid.
func (mw *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			httperrors.Abort(c, httperrors.NewAuth("missing bearer token"))
			return
		}

		claims, err := mw.tokens.Verify(tokenStr)
		if err != nil {
			httperrors.Abort(c, err)
			return
		}

		user, err := mw.users.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			mw.logger.Error("failed to resolve token subject", zap.Error(err))
			httperrors.Abort(c, httperrors.Wrap(err, "failed to authenticate"))
			return
		}
		if user == nil || !user.Status {
			httperrors.Abort(c, httperrors.NewAuth("account not found or deactivated"))
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// RequireRoles gates a route to callers holding one of the given roles.
// Must run after RequireAuth.
func (mw *Middleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok {
			httperrors.Abort(c, httperrors.NewAuth("authentication required"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		httperrors.Abort(c, httperrors.NewForbidden("insufficient role for this resource"))
	}
}
