package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tiendago/ventas-online/config"
	"github.com/tiendago/ventas-online/internal/auth"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/product"
	"github.com/tiendago/ventas-online/internal/product/dto"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ProductHandler struct {
	uc      product.UseCase
	logger  *zap.Logger
	uploads config.UploadsConfig
}

func NewProductHandler(uc product.UseCase, uploads config.UploadsConfig, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		uc:      uc,
		logger:  log,
		uploads: uploads,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup, mw *auth.Middleware) {
	products := rg.Group("/product")
	products.GET("", h.List)
	products.GET("/out-of-stock", h.OutOfStock)
	products.GET("/best-selling", h.BestSelling)
	products.GET("/:id", h.GetByID)
	products.POST("", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.Create)
	products.PUT("/:id", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.Update)
	products.DELETE("/:id", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.Delete)
	products.PATCH("/:id/image", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.UploadImage)
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := &dto.ProductFilters{
		Name:       c.Query("name"),
		CategoryID: c.Query("category"),
	}

	products, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) OutOfStock(c *gin.Context) {
	products, err := h.uc.ListOutOfStock(c.Request.Context())
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) BestSelling(c *gin.Context) {
	products, err := h.uc.ListBestSelling(c.Request.Context())
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"product": p})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input dto.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusCreated, gin.H{"message": "product created successfully", "product": p})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "product updated successfully", "product": p})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "product deleted successfully"})
}

func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		httperrors.Respond(c, httperrors.NewValidation("an image file is required"))
		return
	}
	if file.Size > h.uploads.MaxSizeMB*1024*1024 {
		httperrors.Respond(c, httperrors.NewValidation(fmt.Sprintf("image exceeds the %dMB limit", h.uploads.MaxSizeMB)))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		httperrors.Respond(c, httperrors.NewValidation("unsupported image format"))
		return
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(h.uploads.Dir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.logger.Error("failed to store uploaded image", zap.Error(err))
		httperrors.Respond(c, httperrors.Wrap(err, "failed to store image"))
		return
	}

	p, err := h.uc.AddImage(c.Request.Context(), c.Param("id"), filename)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"message": "product image updated", "product": p})
}
