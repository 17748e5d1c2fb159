// Package schedule concentra la aritmética de fechas del dominio: derivación
// de la fecha promesa (SLA) y recurrencia de tareas preventivas.
package schedule

import (
	"time"

	"github.com/Rowther/multitenantcrm/internal/domain/entity"
)

// SLACatalog catálogo fijo de duraciones de SLA admitidas (días calendario).
var SLACatalog = []int{1, 2, 3, 5, 7, 10, 15, 30}

// ValidSLADays indica si la duración pertenece al catálogo.
func ValidSLADays(days int) bool {
	for _, d := range SLACatalog {
		if d == days {
			return true
		}
	}
	return false
}

// PromiseDate deriva la fecha promesa: instante de la llamada de
// programación + días de SLA. Re-derivarla reinicia la cuenta regresiva; las
// transiciones de estado nunca la tocan.
func PromiseDate(ref time.Time, slaDays int) time.Time {
	return ref.AddDate(0, 0, slaDays)
}

// deadlineWindowDays ventana de aviso: la fecha promesa está "próxima" si
// faltan entre 0 y 2 días, ambos extremos inclusive.
const deadlineWindowDays = 2

// DeadlineApproaching indica si la fecha promesa está por vencer. Devuelve
// false si la orden está COMPLETED o no tiene fecha promesa.
func DeadlineApproaching(promise *time.Time, status string, now time.Time) bool {
	if promise == nil || status == entity.WOStatusCompleted {
		return false
	}
	remaining := promise.Sub(now)
	if remaining < 0 {
		return false
	}
	return remaining <= deadlineWindowDays*24*time.Hour
}
