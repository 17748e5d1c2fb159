package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. El ciclo de vida es independiente de la orden de
// trabajo una vez creada (editable, re-emitible).
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusIssued    = "ISSUED"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

// ValidInvoiceStatus valida que el estado pertenezca al conjunto conocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceItem línea de la factura (descripción y monto).
type InvoiceItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice representa una factura emitida a partir de una orden de trabajo.
// Subtotal y TotalAmount son derivados (Σ items y subtotal + impuesto); el
// motor nunca re-valida contra el precio cotizado de la orden.
type Invoice struct {
	ID            string
	CompanyID     string
	WorkOrderID   string
	InvoiceNumber string // INV-%06d, único y monotónico por empresa
	Items         []InvoiceItem
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        string
	IssuedDate    time.Time
	DueDate       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
