package handlers

import (
	"bytes"
	"net/http"

	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const donorsCSVFilename = "donors.csv"

type exportHandler struct {
	exportService portssvc.ExportSvc
}

func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvc) {
	h := &exportHandler{exportService: exportService}
	rg.GET("/export/donors.csv", h.exportDonors)
}

// exportDonors godoc
// @Summary Export all donors as CSV
// @Tags export
// @Produce  text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/donors.csv [get]
func (h *exportHandler) exportDonors(c *gin.Context) {
	// Buffered so a failure part-way still yields a clean error response.
	var buf bytes.Buffer
	if err := h.exportService.WriteDonorsCSV(c.Request.Context(), &buf); err != nil {
		writeError(c, err, "Failed to export donors")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+donorsCSVFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
