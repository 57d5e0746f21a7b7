package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/ventas-online/internal/auth"
	"github.com/tiendago/ventas-online/internal/cart"
	"github.com/tiendago/ventas-online/internal/cart/dto"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

type CartHandler struct {
	uc     cart.UseCase
	logger *zap.Logger
}

func NewCartHandler(uc cart.UseCase, log *zap.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

// All cart routes are scoped to the authenticated caller.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup, mw *auth.Middleware) {
	carts := rg.Group("/cart", mw.RequireAuth())
	carts.GET("", h.Get)
	carts.POST("", h.Add)
	carts.PUT("", h.Edit)
	carts.DELETE("/item/:productId", h.Remove)
	carts.DELETE("", h.Clear)
}

func (h *CartHandler) Get(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	crt, err := h.uc.GetCart(c.Request.Context(), caller.ID)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"cart": crt})
}

func (h *CartHandler) Add(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	var input dto.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	crt, err := h.uc.AddItem(c.Request.Context(), caller.ID, &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "product added to cart", "cart": crt})
}

func (h *CartHandler) Edit(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	var input dto.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	crt, err := h.uc.EditItem(c.Request.Context(), caller.ID, &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "cart updated successfully", "cart": crt})
}

func (h *CartHandler) Remove(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	crt, err := h.uc.RemoveItem(c.Request.Context(), caller.ID, c.Param("productId"))
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "product removed from cart", "cart": crt})
}

func (h *CartHandler) Clear(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	crt, err := h.uc.ClearCart(c.Request.Context(), caller.ID)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "cart emptied", "cart": crt})
}
