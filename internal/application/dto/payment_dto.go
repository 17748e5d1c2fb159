package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest entrada para abonar contra una orden de trabajo.
type ApplyPaymentRequest struct {
	WorkOrderID     string          `json:"work_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
}

// PaymentResponse un pago registrado.
type PaymentResponse struct {
	ID              string          `json:"id"`
	WorkOrderID     string          `json:"work_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	ReceivedBy      string          `json:"received_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PaymentProgressResponse snapshot del avance de pago tras aplicar un abono.
// ProgressPercent = paid/quoted × 100 (0 si quoted es 0).
type PaymentProgressResponse struct {
	Payment         PaymentResponse `json:"payment"`
	QuotedPrice     decimal.Decimal `json:"quoted_price"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
}
