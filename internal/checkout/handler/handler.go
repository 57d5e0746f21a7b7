package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/ventas-online/internal/auth"
	"github.com/tiendago/ventas-online/internal/checkout"
	"github.com/tiendago/ventas-online/pkg/httperrors"
)

type Handler struct {
	uc checkout.UseCase
}

func NewHandler(uc checkout.UseCase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw *auth.Middleware) {
	r.POST("/checkout", mw.RequireAuth(), h.Checkout)
}

func (h *Handler) Checkout(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	inv, err := h.uc.Checkout(c.Request.Context(), caller.ID)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusCreated, gin.H{
		"message": "purchase completed",
		"invoice": inv,
	})
}
