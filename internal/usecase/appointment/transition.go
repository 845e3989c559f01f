package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/charmcut/charmcut-api/internal/audit"
	"github.com/charmcut/charmcut-api/internal/domain/actor"
	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/models"
	"github.com/charmcut/charmcut-api/internal/timezone"
)

type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves an appointment to the target status on behalf of an actor.
// Ownership rules: a client may only touch their own appointments, a barber
// only those booked against them; admins may touch any.
func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	by actor.Actor,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	switch by.Role {
	case actor.RoleClient:
		if ap.ClientID != by.ID {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
	case actor.RoleBarber:
		if ap.BarberID != by.ID {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
	}

	cfg, err := uc.repo.GetShopConfig(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(cfg.Timezone)
	if err := domain.Transition(ap, target, by, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &by.ID,
		Role:     string(by.Role),
		Action:   "appointment_" + string(target),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
