package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/dto"
	"github.com/rentora-app/rentora_backend/internal/middleware"
)

// journalHandler handles read access to posted journal entries.
type journalHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

func registerJournalRoutes(rg *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade) {
	h := &journalHandler{ledgerSvc: ledgerSvc}
	journal := rg.Group("/journal-entries")
	journal.GET("", h.listEntries)
	journal.GET("/:entryID", h.getEntry)
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	token := ""
	if params.NextToken != nil {
		token = *params.NextToken
	}

	entries, nextToken, err := h.ledgerSvc.ListEntries(c.Request.Context(), companyID, params.Limit, token)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to list journal entries"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := dto.ListJournalEntriesResponse{
		Entries: make([]dto.JournalEntryResponse, len(entries)),
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	if nextToken != "" {
		resp.NextToken = &nextToken
	}
	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}

	entry, err := h.ledgerSvc.GetEntryByID(c.Request.Context(), companyID, entryID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to get journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(status, gin.H{"error": "Failed to retrieve journal entry"})
			return
		}
		logger.Warn("Journal entry not available", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
