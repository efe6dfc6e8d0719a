package controllers

import (
	"net/http"
	"time"

	"github.com/dineflow/table-orders-api/services"
	"github.com/gin-gonic/gin"
)

// BillController serves bill projections and exports
type BillController struct {
	orders   *services.OrderService
	exporter *services.BillExportService
	location *time.Location
}

// NewBillController creates a bill controller. A nil exporter disables exports.
func NewBillController(orders *services.OrderService, exporter *services.BillExportService, loc *time.Location) *BillController {
	return &BillController{
		orders:   orders,
		exporter: exporter,
		location: loc,
	}
}

// GetOrderBill handles GET /api/v1/orders/:id/bill - the data a printable bill is rendered from
func (ctl *BillController) GetOrderBill(c *gin.Context) {
	order, err := ctl.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, services.ProjectBill(order, ctl.location))
}

// ExportOrderBill handles POST /api/v1/orders/:id/bill/export - stores a bill
// snapshot and returns a temporary download link
func (ctl *BillController) ExportOrderBill(c *gin.Context) {
	if ctl.exporter == nil {
		respondError(c, http.StatusServiceUnavailable, "BILL_EXPORT_DISABLED", "Bill export storage is not configured", nil)
		return
	}

	order, err := ctl.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	export, err := ctl.exporter.Export(c.Request.Context(), order)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusBadGateway, "BILL_EXPORT_FAILED", "Failed to export bill", nil)
		return
	}

	respondData(c, http.StatusCreated, export)
}
