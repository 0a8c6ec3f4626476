package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/dto"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// stockHandler handles HTTP requests for stock movements and alerts.
type stockHandler struct {
	stockSvc portssvc.StockSvcFacade
}

func registerStockRoutes(rg *gin.RouterGroup, stockSvc portssvc.StockSvcFacade) {
	h := &stockHandler{stockSvc: stockSvc}
	stock := rg.Group("/stock")
	stock.POST("/movements", h.recordMovement)
	stock.POST("/movements/:movementID/reconcile", h.reconcileMovement)
	stock.GET("/equipment/:equipmentID/movements", h.listMovements)
	stock.GET("/alerts", h.listAlerts)
}

func (h *stockHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement := domain.StockMovement{
		CompanyID:      req.CompanyID,
		EquipmentID:    req.EquipmentID,
		InvoiceID:      req.InvoiceID,
		MovementType:   domain.MovementType(req.MovementType),
		Direction:      domain.MovementDirection(req.Direction),
		MovementReason: req.MovementReason,
		Quantity:       req.Quantity,
		Notes:          req.Notes,
	}
	recorded, err := h.stockSvc.RecordMovement(c.Request.Context(), movement, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to record stock movement", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to record stock movement"})
			return
		}
		logger.Warn("Stock movement rejected", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.ToStockMovementResponse(recorded))
}

func (h *stockHandler) reconcileMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	var req dto.ReconcileMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}

	movement, err := h.stockSvc.ReconcileMovement(c.Request.Context(), companyID, movementID, req.InvoiceID, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to reconcile movement", slog.String("error", err.Error()), slog.String("movement_id", movementID))
			c.JSON(status, gin.H{"error": "Failed to reconcile movement"})
			return
		}
		logger.Warn("Reconciliation rejected", slog.String("error", err.Error()), slog.String("movement_id", movementID))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToStockMovementResponse(movement))
}

func (h *stockHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	equipmentID := c.Param("equipmentID")

	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	movements, err := h.stockSvc.ListMovements(c.Request.Context(), companyID, equipmentID, limit, offset)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to list movements", slog.String("error", err.Error()), slog.String("equipment_id", equipmentID))
			c.JSON(status, gin.H{"error": "Failed to list movements"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": dto.ToStockMovementResponses(movements)})
}

func (h *stockHandler) listAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}

	alerts, err := h.stockSvc.ListActiveAlerts(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list stock alerts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": dto.ToStockAlertResponses(alerts)})
}
