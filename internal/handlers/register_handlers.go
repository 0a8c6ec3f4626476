package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/middleware"
	"github.com/rentora-app/rentora_backend/pkg/config"
)

// registerCustomValidations teaches gin's validator the decimal tags the
// request DTOs use: dgt0 (strictly positive) and dgte0 (non-negative).
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})
	_ = v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && !d.IsNegative()
	})
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidations()
	registerHomeRoutes(r)

	// Every API route needs an acting user for the audit trail.
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerPostingRoutes(v1, services.Posting)
	registerStockRoutes(v1, services.Stock)
	registerJournalRoutes(v1, services.Ledger)
	registerAccountRoutes(v1, services.Chart)
	registerReportingRoutes(v1, services.Reporting)
}

// statusFromError maps service errors to HTTP status codes.
func statusFromError(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnknownAccount),
		errors.Is(err, apperrors.ErrInsufficientStock),
		errors.Is(err, apperrors.ErrLedgerImbalance):
		return http.StatusUnprocessableEntity
	case errors.As(err, &appErr):
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
