package entity

import (
	"encoding/json"
	"time"
)

// Tipos de notificación in-app.
const (
	NotifWorkOrderAssigned      = "work_order_assigned"
	NotifWorkOrderStatusChanged = "work_order_status_changed"
	NotifInvoiceIssued          = "invoice_issued"
	NotifPaymentReceived        = "payment_received"
)

// Notification aviso in-app para un usuario.
type Notification struct {
	ID        string
	UserID    string
	CompanyID string
	Type      string
	Payload   json.RawMessage
	ReadAt    *time.Time
	SentAt    time.Time
}
