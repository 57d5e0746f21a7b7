package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/ventas-online/internal/auth"
	"github.com/tiendago/ventas-online/internal/invoice"
	"github.com/tiendago/ventas-online/internal/invoice/dto"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
)

type InvoiceHandler struct {
	uc invoice.UseCase
}

func NewInvoiceHandler(uc invoice.UseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup, mw *auth.Middleware) {
	invoices := rg.Group("/invoice", mw.RequireAuth())
	invoices.GET("", mw.RequireRoles(model.RoleAdmin), h.List)
	invoices.GET("/:id", h.GetByID)
	invoices.GET("/:id/download", h.Download)
	invoices.POST("", mw.RequireRoles(model.RoleAdmin), h.Create)
	invoices.PUT("/:id", mw.RequireRoles(model.RoleAdmin), h.Update)

	rg.GET("/user/purchases", mw.RequireAuth(), h.Purchases)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var userID *string
	if user := c.Query("user"); user != "" {
		userID = &user
	}

	invoices, err := h.uc.ListInvoices(c.Request.Context(), userID)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"invoices": invoices})
}

func (h *InvoiceHandler) GetByID(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	inv, err := h.uc.GetInvoice(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var input dto.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	inv, err := h.uc.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusCreated, gin.H{"message": "invoice created successfully", "invoice": inv})
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	var input dto.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	inv, err := h.uc.UpdateInvoice(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "invoice updated successfully", "invoice": inv})
}

func (h *InvoiceHandler) Download(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	filename, data, err := h.uc.DownloadInvoice(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *InvoiceHandler) Purchases(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	invoices, err := h.uc.ListUserPurchases(c.Request.Context(), caller.ID)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"purchases": invoices})
}
