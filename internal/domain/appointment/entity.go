package appointment

import (
	"time"

	"github.com/charmcut/charmcut-api/internal/domain/actor"
	"github.com/charmcut/charmcut-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a status move to the entity in memory. On any error the
// entity is left untouched; ScheduledAt is never mutated here.
func Transition(ap *models.Appointment, to Status, by actor.Actor, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to, by.Role); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusFinalized:
		ap.CompletedAt = &now
	}

	return nil
}

func Cancel(ap *models.Appointment, by actor.Actor, now time.Time) error {
	return Transition(ap, StatusCancelled, by, now)
}

func Finalize(ap *models.Appointment, by actor.Actor, now time.Time) error {
	return Transition(ap, StatusFinalized, by, now)
}
