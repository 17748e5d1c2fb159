package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/schedule"
)

func TestPromiseDate(t *testing.T) {
	ref := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	got := schedule.PromiseDate(ref, 7)
	assert.Equal(t, time.Date(2024, 3, 17, 15, 30, 0, 0, time.UTC), got)
}

func TestValidSLADays(t *testing.T) {
	assert.True(t, schedule.ValidSLADays(1))
	assert.True(t, schedule.ValidSLADays(30))
	assert.False(t, schedule.ValidSLADays(0))
	assert.False(t, schedule.ValidSLADays(4))
	assert.False(t, schedule.ValidSLADays(-7))
}

func TestDeadlineApproaching_Ventana(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		p := now.Add(d)
		return &p
	}

	// Exactamente a 2 días: dentro de la ventana (extremo inclusive).
	assert.True(t, schedule.DeadlineApproaching(at(2*24*time.Hour), entity.WOStatusPending, now))
	// A 2.5 días: fuera.
	assert.False(t, schedule.DeadlineApproaching(at(60*time.Hour), entity.WOStatusPending, now))
	// Ahora mismo: dentro (extremo 0 inclusive).
	assert.True(t, schedule.DeadlineApproaching(at(0), entity.WOStatusInProgress, now))
	// Ya vencida: fuera.
	assert.False(t, schedule.DeadlineApproaching(at(-time.Hour), entity.WOStatusPending, now))
}

func TestDeadlineApproaching_CompletedOSinPromesa(t *testing.T) {
	now := time.Now()
	promise := now.Add(24 * time.Hour)

	assert.False(t, schedule.DeadlineApproaching(&promise, entity.WOStatusCompleted, now))
	assert.False(t, schedule.DeadlineApproaching(nil, entity.WOStatusPending, now))
}
