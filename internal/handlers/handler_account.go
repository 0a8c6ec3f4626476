package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/dto"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// accountHandler handles chart-of-accounts routes.
type accountHandler struct {
	chartSvc portssvc.ChartSvcFacade
}

func registerAccountRoutes(rg *gin.RouterGroup, chartSvc portssvc.ChartSvcFacade) {
	h := &accountHandler{chartSvc: chartSvc}
	accounts := rg.Group("/accounts")
	accounts.POST("/seed", h.seedAccounts)
	accounts.GET("", h.listAccounts)
}

func (h *accountHandler) seedAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SeedAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accounts, err := h.chartSvc.SeedDefaults(c.Request.Context(), req.CompanyID, userID)
	if err != nil {
		logger.Error("Failed to seed default accounts", slog.String("error", err.Error()), slog.String("company_id", req.CompanyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed default accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}

	accounts, err := h.chartSvc.ListAccounts(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}
