package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee técnico de una empresa, ligado a una cuenta de usuario.
type Employee struct {
	ID         string
	CompanyID  string
	UserID     string
	Position   string
	Skills     []string
	HourlyRate *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
