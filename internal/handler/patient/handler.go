package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihdim5/healthrecord-api/internal/handler"
	"github.com/ihdim5/healthrecord-api/internal/middleware"
	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/service/patient"
	"github.com/ihdim5/healthrecord-api/internal/service/summary"
)

type Handler struct {
	service   patient.PatientService
	summaries *summary.Service
}

func NewHandler(service patient.PatientService, summaries *summary.Service) *Handler {
	return &Handler{
		service:   service,
		summaries: summaries,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Register)
		patients.GET("", authMW.RequireAuth(), authMW.RequireKind(model.KindAdmin), h.List)
		patients.GET("/lookup/:token", authMW.RequireAuth(), authMW.RequireVerifiedDoctor(), h.GetByLookupToken)
		patients.GET("/:id", authMW.RequireAuth(), authMW.RequirePatientAccess(), h.Get)
		patients.PUT("/:id", authMW.RequireAuth(), authMW.RequirePatientAccess(), h.Update)
		patients.DELETE("/:id", authMW.RequireAuth(), authMW.RequireKind(model.KindAdmin), h.Delete)

		patients.POST("/:id/notes", authMW.RequireAuth(), authMW.RequireVerifiedDoctor(), h.AddMedicalNote)
		patients.POST("/:id/prescriptions", authMW.RequireAuth(), authMW.RequireVerifiedDoctor(), h.AddPrescription)
		patients.POST("/:id/lab-orders", authMW.RequireAuth(), authMW.RequireVerifiedDoctor(), h.AddLabOrder)
		patients.GET("/:id/summary", authMW.RequireAuth(), authMW.RequireVerifiedDoctor(), h.GetSummary)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterPatientRequest
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

func (h *Handler) List(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

// GetByLookupToken treats the scanned token as a candidate patient id.
func (h *Handler) GetByLookupToken(c *gin.Context) {
	p, err := h.service.GetByLookupToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdatePatientRequest
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

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) AddMedicalNote(c *gin.Context) {
	var req model.AddMedicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.AddMedicalNote(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(updated))
}

func (h *Handler) AddPrescription(c *gin.Context) {
	var req model.AddPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.AddPrescription(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(updated))
}

func (h *Handler) AddLabOrder(c *gin.Context) {
	var req model.AddLabOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.AddLabOrder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(updated))
}

func (h *Handler) GetSummary(c *gin.Context) {
	text, err := h.summaries.GenerateSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"summary": text}))
}
