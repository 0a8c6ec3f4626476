package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/dto"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// reportingHandler handles read-only report routes.
type reportingHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingSvc: reportingSvc}
	reports := rg.Group("/reports")
	reports.GET("/aging", h.agingReport)
}

func (h *reportingHandler) agingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}

	var kind *domain.InstrumentKind
	if kindStr := c.Query("kind"); kindStr != "" {
		k := domain.InstrumentKind(kindStr)
		if k != domain.InstrumentCheck && k != domain.InstrumentPromissoryNote {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be check or promissory_note"})
			return
		}
		kind = &k
	}

	asOf := time.Now()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be an RFC3339 timestamp"})
			return
		}
		asOf = parsed
	}

	report, err := h.reportingSvc.AgingFor(c.Request.Context(), companyID, kind, asOf)
	if err != nil {
		logger.Error("Failed to build aging report", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build aging report"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAgingReportResponse(report.Receivable, report.Payable))
}
