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

// postingHandler handles HTTP requests that feed business events into the
// posting pipeline.
type postingHandler struct {
	postingSvc portssvc.PostingSvcFacade
}

func registerPostingRoutes(rg *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade) {
	h := &postingHandler{postingSvc: postingSvc}
	ledger := rg.Group("/ledger")
	ledger.POST("/invoices", h.postInvoiceIssued)
	ledger.POST("/payments", h.postPaymentReceived)
	ledger.POST("/adjustments", h.postStockAdjusted)
	ledger.POST("/expenses", h.postExpenseRecorded)
}

func toPostingResponse(outcome *portssvc.PostingOutcome) dto.PostingResponse {
	resp := dto.PostingResponse{
		Warning: outcome.Warning,
		Invoice: dto.ToInvoiceResponse(outcome.Invoice),
	}
	if outcome.Record != nil {
		resp.State = string(outcome.Record.State)
		if outcome.Record.EntryID != nil {
			resp.EntryID = *outcome.Record.EntryID
		}
		if outcome.Record.EntryNumber != nil {
			resp.EntryNumber = *outcome.Record.EntryNumber
		}
	}
	return resp
}

// process runs the event through the orchestrator and writes the response.
// A replayed event answers 200, a fresh posting 201.
func (h *postingHandler) process(c *gin.Context, event domain.BusinessEvent) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("event_type", string(event.Type())),
		slog.String("source_entity_id", event.SourceID()),
	)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	outcome, err := h.postingSvc.Process(c.Request.Context(), event, userID)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to process event", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to process event"})
			return
		}
		logger.Warn("Event rejected", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusCreated
	if outcome.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, toPostingResponse(outcome))
}

func (h *postingHandler) postInvoiceIssued(c *gin.Context) {
	var req dto.PostInvoiceIssuedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.process(c, req.ToDomainEvent(time.Now()))
}

func (h *postingHandler) postPaymentReceived(c *gin.Context) {
	var req dto.PostPaymentReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.process(c, req.ToDomainEvent(time.Now()))
}

func (h *postingHandler) postStockAdjusted(c *gin.Context) {
	var req dto.PostStockAdjustedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.process(c, req.ToDomainEvent(time.Now()))
}

func (h *postingHandler) postExpenseRecorded(c *gin.Context) {
	var req dto.PostExpenseRecordedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.process(c, req.ToDomainEvent(time.Now()))
}
