package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/ventas-online/internal/auth"
	"github.com/tiendago/ventas-online/internal/model"
	"github.com/tiendago/ventas-online/internal/user"
	"github.com/tiendago/ventas-online/internal/user/dto"
	"github.com/tiendago/ventas-online/pkg/httperrors"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc     user.UseCase
	logger *zap.Logger
}

func NewUserHandler(uc user.UseCase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, mw *auth.Middleware) {
	authGroup := rg.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	users := rg.Group("/user")
	users.GET("", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.List)
	users.GET("/me", mw.RequireAuth(), h.Me)
	users.GET("/:id", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.GetByID)
	users.POST("", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.Create)
	users.PUT("", mw.RequireAuth(), h.UpdateSelf)
	users.PUT("/:id", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.UpdateByID)
	users.DELETE("", mw.RequireAuth(), h.DeleteSelf)
	users.DELETE("/:id", mw.RequireAuth(), mw.RequireRoles(model.RoleAdmin), h.DeleteByID)
}

func (h *UserHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	u, err := h.uc.Register(c.Request.Context(), &input)
	if err != nil {
		h.logger.Warn("registration failed", zap.String("username", input.Username), zap.Error(err))
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusCreated, gin.H{"message": "user registered successfully", "user": u})
}

func (h *UserHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	u, token, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusOK, gin.H{"message": "login successful", "user": u, "token": token})
}

func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, total, err := h.uc.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusOK, gin.H{"total": total, "users": users})
}

func (h *UserHandler) Me(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"user": caller})
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperrors.Respond(c, err)
		return
	}
	httperrors.OK(c, http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) Create(c *gin.Context) {
	var input dto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusCreated, gin.H{"message": "user created successfully", "user": u})
}

func (h *UserHandler) UpdateSelf(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	u, err := h.uc.UpdateSelf(c.Request.Context(), caller, &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusOK, gin.H{"message": "user updated successfully", "user": u})
}

func (h *UserHandler) UpdateByID(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httperrors.Respond(c, &httperrors.AppError{Kind: httperrors.KindValidation, Message: "invalid request body", Err: err})
		return
	}

	u, err := h.uc.UpdateByID(c.Request.Context(), caller, c.Param("id"), &input)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusOK, gin.H{"message": "user updated successfully", "user": u})
}

func (h *UserHandler) DeleteSelf(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	u, err := h.uc.DeleteSelf(c.Request.Context(), caller)
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusOK, gin.H{"message": "user deleted successfully", "user": u})
}

func (h *UserHandler) DeleteByID(c *gin.Context) {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		httperrors.Respond(c, httperrors.NewAuth("authentication required"))
		return
	}

	u, err := h.uc.DeleteByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		httperrors.Respond(c, err)
		return
	}

	httperrors.OK(c, http.StatusOK, gin.H{"message": "user deleted successfully", "user": u})
}
