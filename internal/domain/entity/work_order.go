package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo. Las transiciones son libres (cualquier
// estado puede pasar a cualquier otro); las únicas reglas fijas son las del
// candado de adjuntos al pasar a COMPLETED.
const (
	WOStatusDraft      = "DRAFT"
	WOStatusPending    = "PENDING"
	WOStatusApproved   = "APPROVED"
	WOStatusInProgress = "IN_PROGRESS"
	WOStatusCompleted  = "COMPLETED"
	WOStatusCancelled  = "CANCELLED"
)

// Prioridades de una orden de trabajo.
const (
	WOPriorityLow    = "LOW"
	WOPriorityMedium = "MEDIUM"
	WOPriorityHigh   = "HIGH"
	WOPriorityUrgent = "URGENT"
)

// ValidWOStatus valida que el estado pertenezca al conjunto conocido.
func ValidWOStatus(s string) bool {
	switch s {
	case WOStatusDraft, WOStatusPending, WOStatusApproved,
		WOStatusInProgress, WOStatusCompleted, WOStatusCancelled:
		return true
	}
	return false
}

// ValidWOPriority valida que la prioridad pertenezca al conjunto conocido.
func ValidWOPriority(p string) bool {
	switch p {
	case WOPriorityLow, WOPriorityMedium, WOPriorityHigh, WOPriorityUrgent:
		return true
	}
	return false
}

// ProductLine línea de producto embebida en la orden (nombre, categoría del
// vocabulario de la industria, cantidad y precio unitario).
type ProductLine struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// WorkOrder representa una orden de trabajo de una empresa.
// QuotedPrice es derivado (Σ cantidad×precio de Products) y PaidAmount lo
// mantiene el libro de pagos; el invariante PaidAmount ≤ QuotedPrice se
// garantiza bajo bloqueo por fila.
type WorkOrder struct {
	ID                  string
	CompanyID           string
	OrderNumber         string // WO-%06d, único y monotónico por empresa
	Title               string
	Description         string
	Status              string
	Priority            string
	CreatedBy           string
	RequestedByClientID string
	VehicleID           string // solo industria automotive
	AssetCode           string // obligatorio en technical_solutions
	AssetCategory       string // obligatorio en technical_solutions
	AssignedTechnicians []string
	Products            []ProductLine
	QuotedPrice         decimal.Decimal
	PaidAmount          decimal.Decimal
	Attachments         []string // URIs
	SLADays             *int     // uno del catálogo de schedule.SLACatalog
	PromiseDate         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RemainingBalance saldo pendiente de la orden (QuotedPrice − PaidAmount).
func (w *WorkOrder) RemainingBalance() decimal.Decimal {
	return w.QuotedPrice.Sub(w.PaidAmount)
}

// QuoteFromProducts recalcula el precio cotizado a partir de las líneas.
func QuoteFromProducts(products []ProductLine) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Quantity.Mul(p.UnitPrice))
	}
	return total
}
