package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago. Card exige número de referencia.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// Payment representa un abono contra el precio cotizado de una orden.
// La suma de los pagos de una orden es igual a su PaidAmount.
type Payment struct {
	ID              string
	CompanyID       string
	WorkOrderID     string
	Amount          decimal.Decimal
	Method          string // cash | card
	ReferenceNumber string // obligatorio si Method == card
	ReceivedBy      string
	CreatedAt       time.Time
}
