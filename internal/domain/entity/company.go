package entity

import "time"

// Industrias soportadas. La industria de la empresa selecciona la variante
// de comportamiento (vocabulario de productos, campos obligatorios, candado
// de cierre). Ver internal/domain/policy.
const (
	IndustryFurniture          = "furniture"
	IndustryAutomotive         = "automotive"
	IndustryTechnicalSolutions = "technical_solutions"
	IndustryOther              = "other"
)

// Company representa una organización/tenant del sistema.
type Company struct {
	ID           string
	Name         string
	Industry     string // ver constantes Industry*
	Description  string
	Address      string
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
