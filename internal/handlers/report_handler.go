package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charmcut/charmcut-api/internal/httperr"
	ucAppointment "github.com/charmcut/charmcut-api/internal/usecase/appointment"
)

type ReportHandler struct {
	reportUC *ucAppointment.BuildReport
}

func NewReportHandler(reportUC *ucAppointment.BuildReport) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Get returns the admin report as JSON; rendering (PDF or otherwise) is the
// consumer's concern.
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reportUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório.")
		return
	}

	c.JSON(http.StatusOK, report)
}
