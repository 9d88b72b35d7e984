package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihdim5/healthrecord-api/internal/handler"
	"github.com/ihdim5/healthrecord-api/internal/middleware"
	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/service/doctor"
)

type Handler struct {
	service doctor.DoctorService
}

func NewHandler(service doctor.DoctorService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.Register)
		doctors.GET("", authMW.RequireAuth(), h.List)
		doctors.GET("/:id", authMW.RequireAuth(), h.Get)
		doctors.PUT("/:id", authMW.RequireAuth(), h.Update)
		doctors.PUT("/:id/status", authMW.RequireAuth(), authMW.RequireKind(model.KindAdmin), h.UpdateStatus)
		doctors.DELETE("/:id", authMW.RequireAuth(), authMW.RequireKind(model.KindAdmin), h.Delete)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

// List returns the full roster to administrators. Everyone else sees only
// verified doctors; a doctor is invisible to patients until admitted.
func (h *Handler) List(c *gin.Context) {
	kind := model.AccountKind(c.GetString(middleware.ContextAccountKind))

	var (
		doctors []*model.Doctor
		err     error
	)
	if kind == model.KindAdmin {
		doctors, err = h.service.List(c.Request.Context())
	} else {
		doctors, err = h.service.ListVerified(c.Request.Context())
	}
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) Get(c *gin.Context) {
	d, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

// Update modifies a doctor profile: the doctor themself or an admin.
func (h *Handler) Update(c *gin.Context) {
	kind := model.AccountKind(c.GetString(middleware.ContextAccountKind))
	if kind != model.KindAdmin && c.GetString(middleware.ContextAccountID) != c.Param("id") {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

type updateStatusRequest struct {
	Status model.VerificationStatus `json:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateVerificationStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
