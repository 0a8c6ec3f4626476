package dto

import (
	"github.com/rentora-app/rentora_backend/internal/utils/aging"
	"github.com/shopspring/decimal"
)

// AgingSummary totals the classified instruments, split by receivable and
// payable sides.
type AgingSummary struct {
	TotalCount       int             `json:"totalCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	ReceivableCount  int             `json:"receivableCount"`
	ReceivableAmount decimal.Decimal `json:"receivableAmount"`
	PayableCount     int             `json:"payableCount"`
	PayableAmount    decimal.Decimal `json:"payableAmount"`
}

// AgingReportResponse is the aging view returned by reporting routes.
type AgingReportResponse struct {
	Receivable aging.Report `json:"receivable"`
	Payable    aging.Report `json:"payable"`
	Summary    AgingSummary `json:"summary"`
}

// ToAgingReportResponse combines the per-side reports into the response view.
func ToAgingReportResponse(receivable, payable aging.Report) AgingReportResponse {
	return AgingReportResponse{
		Receivable: receivable,
		Payable:    payable,
		Summary: AgingSummary{
			TotalCount:       receivable.TotalCount + payable.TotalCount,
			TotalAmount:      receivable.TotalAmount.Add(payable.TotalAmount),
			ReceivableCount:  receivable.TotalCount,
			ReceivableAmount: receivable.TotalAmount,
			PayableCount:     payable.TotalCount,
			PayableAmount:    payable.TotalAmount,
		},
	}
}
