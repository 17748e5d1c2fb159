package schedule

import (
	"time"

	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
)

// NextDue calcula la próxima fecha de vencimiento según la frecuencia:
// daily +1 día, weekly +7 días, monthly +1 mes calendario, yearly +1 año.
// Los saltos de mes y año se sujetan al último día del mes destino
// (2024-01-31 monthly → 2024-02-29), a diferencia del AddDate estándar que
// normaliza hacia adelante.
func NextDue(frequency string, from time.Time) (time.Time, error) {
	switch frequency {
	case entity.FrequencyDaily:
		return from.AddDate(0, 0, 1), nil
	case entity.FrequencyWeekly:
		return from.AddDate(0, 0, 7), nil
	case entity.FrequencyMonthly:
		return addMonthsClamped(from, 1), nil
	case entity.FrequencyYearly:
		return addMonthsClamped(from, 12), nil
	default:
		return time.Time{}, domain.ErrValidation
	}
}

// addMonthsClamped suma meses conservando el día, sujeto al último día del
// mes destino.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) + months
	year += (m - 1) / 12
	month = time.Month((m-1)%12 + 1)

	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	h, min, sec := t.Clock()
	return time.Date(year, month, day, h, min, sec, t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// El día 0 del mes siguiente es el último día de este mes.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
