package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charmcut/charmcut-api/internal/domain/actor"
	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/timezone"
)

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.addService(1, "Corte", "30.00", true)
	repo.addService(2, "Barba", "45.00", false)
	repo.addUser(10, "Rafael", "barber", true)
	repo.addUser(11, "Diego", "barber", false)
	repo.addUser(20, "Ana", "client", true)
	return repo
}

// slotAfter formats a date/time pair the given duration from now, in the
// shop's timezone.
func slotAfter(repo *fakeRepo, d time.Duration) (string, string) {
	t := timezone.NowIn(repo.cfg.Timezone).Add(d)
	return t.Format("2006-01-02"), t.Format("15:04")
}

func TestCreateAppointment_StartsPending(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	date, hour := slotAfter(repo, 48*time.Hour)

	ap, err := uc.Execute(context.Background(), actor.Actor{ID: 20, Role: actor.RoleClient}, CreateAppointmentInput{
		BarberID:  10,
		ServiceID: 1,
		Date:      date,
		Time:      hour,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, uint(20), ap.ClientID)
	assert.Equal(t, uint(10), ap.BarberID)
	assert.NotZero(t, ap.ID)
}

func TestCreateAppointment_OnlyClientsBook(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	date, hour := slotAfter(repo, 48*time.Hour)

	for _, role := range []actor.Role{actor.RoleBarber, actor.RoleAdmin} {
		_, err := uc.Execute(context.Background(), actor.Actor{ID: 10, Role: role}, CreateAppointmentInput{
			BarberID:  10,
			ServiceID: 1,
			Date:      date,
			Time:      hour,
		})
		assertBusiness(t, err, "actor_not_allowed")
	}
}

func TestCreateAppointment_TooSoon(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	date, hour := slotAfter(repo, 30*time.Minute)

	_, err := uc.Execute(context.Background(), actor.Actor{ID: 20, Role: actor.RoleClient}, CreateAppointmentInput{
		BarberID:  10,
		ServiceID: 1,
		Date:      date,
		Time:      hour,
	})
	assertBusiness(t, err, "too_soon")
	assert.Empty(t, repo.appointments)
}

func TestCreateAppointment_RejectsBadReferences(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	date, hour := slotAfter(repo, 48*time.Hour)

	cases := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{"unknown service", CreateAppointmentInput{BarberID: 10, ServiceID: 99, Date: date, Time: hour}, "service_not_found"},
		{"inactive service", CreateAppointmentInput{BarberID: 10, ServiceID: 2, Date: date, Time: hour}, "service_inactive"},
		{"unknown barber", CreateAppointmentInput{BarberID: 99, ServiceID: 1, Date: date, Time: hour}, "barber_not_found"},
		{"inactive barber", CreateAppointmentInput{BarberID: 11, ServiceID: 1, Date: date, Time: hour}, "barber_inactive"},
		{"garbage time", CreateAppointmentInput{BarberID: 10, ServiceID: 1, Date: date, Time: "25:99"}, "invalid_date_or_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), actor.Actor{ID: 20, Role: actor.RoleClient}, tc.in)
			assertBusiness(t, err, tc.code)
		})
	}
}

func TestCreateAppointment_SlotConflict(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	date, hour := slotAfter(repo, 48*time.Hour)
	by := actor.Actor{ID: 20, Role: actor.RoleClient}

	_, err := uc.Execute(context.Background(), by, CreateAppointmentInput{
		BarberID: 10, ServiceID: 1, Date: date, Time: hour,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), by, CreateAppointmentInput{
		BarberID: 10, ServiceID: 1, Date: date, Time: hour,
	})
	assertBusiness(t, err, "time_conflict")
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointment_CancelledSlotReopens(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	date, hour := slotAfter(repo, 48*time.Hour)
	by := actor.Actor{ID: 20, Role: actor.RoleClient}

	first, err := uc.Execute(context.Background(), by, CreateAppointmentInput{
		BarberID: 10, ServiceID: 1, Date: date, Time: hour,
	})
	require.NoError(t, err)

	repo.appointments[first.ID].Status = string(domain.StatusCancelled)

	second, err := uc.Execute(context.Background(), by, CreateAppointmentInput{
		BarberID: 10, ServiceID: 1, Date: date, Time: hour,
	})
	require.NoError(t, err)

	// The cancelled row stays as history next to the fresh booking.
	assert.Len(t, repo.appointments, 2)
	assert.Equal(t, string(domain.StatusPending), repo.appointments[second.ID].Status)
}

func TestCreateAppointment_NoShowSlotReopens(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateAppointment(repo, nil)

	date, hour := slotAfter(repo, 48*time.Hour)
	by := actor.Actor{ID: 20, Role: actor.RoleClient}

	first, err := uc.Execute(context.Background(), by, CreateAppointmentInput{
		BarberID: 10, ServiceID: 1, Date: date, Time: hour,
	})
	require.NoError(t, err)

	repo.appointments[first.ID].Status = string(domain.StatusNoShow)

	_, err = uc.Execute(context.Background(), by, CreateAppointmentInput{
		BarberID: 10, ServiceID: 1, Date: date, Time: hour,
	})
	assert.NoError(t, err)
}

func assertBusiness(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, code, be.Code)
}
