package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihdim5/healthrecord-api/internal/handler"
	"github.com/ihdim5/healthrecord-api/internal/middleware"
	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/service/report"
)

type Handler struct {
	service report.ReportService
}

func NewHandler(service report.ReportService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	reports := r.Group("/reports")
	{
		reports.GET("/health", authMW.RequireAuth(),
			authMW.RequireKind(model.KindGovernment, model.KindAdmin), h.GetAnonymizedHealthData)
	}
}

// GetAnonymizedHealthData returns the population snapshot: counts only, no
// patient identifiers.
func (h *Handler) GetAnonymizedHealthData(c *gin.Context) {
	data, err := h.service.GetAnonymizedHealthData(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(data))
}
