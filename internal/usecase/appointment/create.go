package appointment

import (
	"context"
	"time"

	"github.com/charmcut/charmcut-api/internal/audit"
	"github.com/charmcut/charmcut-api/internal/domain/actor"
	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/models"
	"github.com/charmcut/charmcut-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uint
	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	by actor.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if by.Role != actor.RoleClient {
		return nil, httperr.ErrBusiness("actor_not_allowed")
	}

	cfg, err := uc.repo.GetShopConfig(ctx)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(cfg.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := cfg.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(cfg.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	// The unique index on (barber_id, scheduled_at) is the real guard; this
	// check just gives a clean error on the common path.
	if err := uc.repo.AssertSlotFree(ctx, in.BarberID, start); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:    by.ID,
		BarberID:    in.BarberID,
		ServiceID:   svc.ID,
		ScheduledAt: start,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &by.ID,
		Role:     string(by.Role),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
