package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de la factura.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// GenerateInvoiceRequest entrada para emitir una factura desde una orden.
// El impuesto llega como monto directo (TaxAmount) o delegado a la variante
// IVA (IncludeVAT + VATPercent); ambos caminos convergen en la misma factura.
type GenerateInvoiceRequest struct {
	WorkOrderID string               `json:"work_order_id"`
	Items       []InvoiceItemRequest `json:"items"`
	TaxAmount   decimal.Decimal      `json:"tax_amount"`
	IncludeVAT  bool                 `json:"include_vat"`
	VATPercent  decimal.Decimal      `json:"vat_percentage"`
	DueDays     int                  `json:"due_days"`
}

// UpdateInvoiceRequest edición posterior de la factura. Los totales se
// recalculan igual que en la emisión; no se re-valida contra la orden.
type UpdateInvoiceRequest struct {
	Items     []InvoiceItemRequest `json:"items"`
	TaxAmount *decimal.Decimal     `json:"tax_amount"`
	Status    *string              `json:"status"`
	DueDate   *time.Time           `json:"due_date"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID            string               `json:"id"`
	CompanyID     string               `json:"company_id"`
	WorkOrderID   string               `json:"work_order_id"`
	InvoiceNumber string               `json:"invoice_number"`
	Items         []InvoiceItemRequest `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxAmount     decimal.Decimal      `json:"tax_amount"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	Status        string               `json:"status"`
	IssuedDate    time.Time            `json:"issued_date"`
	DueDate       time.Time            `json:"due_date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	Pagination Pagination        `json:"pagination"`
}
