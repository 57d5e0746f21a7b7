package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/ventas-online/internal/auth"
	"github.com/tiendago/ventas-online/internal/category"
	"github.com/tiendago/ventas-online/internal/category/dto"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, mw *auth.Middleware) {
	categories := rg.Group("/category")
	categories.GET("", h.List)
	categories.GET("/:id", h.GetByID)
	categories.POST("", mw.RequireAuth(), h.Create)
	categories.PUT("/:id", mw.RequireAuth(), h.Update)
	categories.DELETE("/:id", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.Delete)
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"categories": cats})
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"category": cat})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}
	input.CreatedBy = caller.ID

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusCreated, gin.H{"message": "category created successfully", "category": cat})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusOK, gin.H{"message": "category updated successfully", "category": cat})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "category deleted and products reassigned"})
}
