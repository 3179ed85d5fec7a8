package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-movil/internal/application/reports"
)

// ReportHandler expone el resumen del dashboard (protegido).
type ReportHandler struct {
	dashboardUC *reports.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboardUC *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{dashboardUC: dashboardUC}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Description  Ventas e ingresos de hoy y del mes, más el top 5 de productos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.dashboardUC.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
