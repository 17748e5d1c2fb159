package entity

import "time"

// Frecuencias de recurrencia de tareas preventivas.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// ValidFrequency valida la frecuencia de recurrencia.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Estados de una tarea preventiva.
const (
	TaskStatusActive    = "ACTIVE"
	TaskStatusPaused    = "PAUSED"
	TaskStatusCompleted = "COMPLETED"
)

// PreventiveTask tarea de mantenimiento recurrente. Completarla registra la
// fecha y recalcula NextDueDate; la tarea sigue ACTIVE indefinidamente hasta
// una pausa explícita.
type PreventiveTask struct {
	ID                  string
	CompanyID           string
	Title               string
	Description         string
	AssetLocation       string
	Frequency           string // daily | weekly | monthly | yearly
	AssignedTechnicians []string
	Status              string
	NextDueDate         time.Time
	LastCompletedDate   *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
