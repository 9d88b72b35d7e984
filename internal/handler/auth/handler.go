package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihdim5/healthrecord-api/internal/handler"
	"github.com/ihdim5/healthrecord-api/internal/middleware"
	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/service/auth"
)

type Handler struct {
	service auth.AuthService
}

func NewHandler(service auth.AuthService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	routes := r.Group("/auth")
	{
		routes.POST("/login", h.Login)
		routes.POST("/logout", h.Logout)
	}
	r.GET("/profile/:id", authMW.RequireAuth(), h.GetProfile)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Account *model.Account `json:"account"`
	Token   string         `json:"token"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	account, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(loginResponse{
		Account: account,
		Token:   token,
	}))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// GetProfile resolves any account kind by id. Admins may look up anyone;
// everyone else only themselves.
func (h *Handler) GetProfile(c *gin.Context) {
	id := c.Param("id")
	kind := model.AccountKind(c.GetString(middleware.ContextAccountKind))
	if kind != model.KindAdmin && c.GetString(middleware.ContextAccountID) != id {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
		return
	}

	account, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(account))
}
