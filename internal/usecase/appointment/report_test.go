package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/models"
)

func TestBuildReport_RevenueSumsFinalizedOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", "30.00", true)
	repo.addService(2, "Barba", "45.00", true)
	repo.addService(3, "Combo", "50.00", true)
	repo.addUser(10, "Rafael", "barber", true)
	repo.addUser(20, "Ana", "client", true)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, svcID := range []uint{1, 2, 3} {
		repo.addAppointment(models.Appointment{
			ClientID: 20, BarberID: 10, ServiceID: svcID,
			ScheduledAt: base.Add(time.Duration(i) * time.Hour),
			Status:      string(domain.StatusFinalized),
		})
	}
	// Cancelled and pending rows never count towards revenue.
	repo.addAppointment(models.Appointment{
		ClientID: 20, BarberID: 10, ServiceID: 3,
		ScheduledAt: base.Add(10 * time.Hour),
		Status:      string(domain.StatusCancelled),
	})
	repo.addAppointment(models.Appointment{
		ClientID: 20, BarberID: 10, ServiceID: 3,
		ScheduledAt: base.Add(11 * time.Hour),
		Status:      string(domain.StatusPending),
	})

	report, err := NewBuildReport(repo).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Summary.Revenue.Equal(decimal.NewFromInt(125)), "got %s", report.Summary.Revenue)
	assert.Equal(t, int64(3), report.Summary.Finalized)
}

func TestBuildReport_CompletionRate(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", "30.00", true)
	repo.addUser(10, "Rafael", "barber", true)
	repo.addUser(20, "Ana", "client", true)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	statuses := []domain.Status{
		domain.StatusFinalized,
		domain.StatusFinalized,
		domain.StatusCancelled,
		domain.StatusNoShow,
		domain.StatusPending,
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
	}
	for i, st := range statuses {
		repo.addAppointment(models.Appointment{
			ClientID: 20, BarberID: 10, ServiceID: 1,
			ScheduledAt: base.Add(time.Duration(i) * time.Hour),
			Status:      string(st),
		})
	}

	report, err := NewBuildReport(repo).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(8), report.Summary.TotalAppointments)
	assert.Equal(t, 25, report.Summary.CompletionRate)
}

func TestBuildReport_EmptyShop(t *testing.T) {
	repo := newFakeRepo()

	report, err := NewBuildReport(repo).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary.CompletionRate)
	assert.True(t, report.Summary.Revenue.IsZero())
	assert.Empty(t, report.PerBarber)
}

func TestBuildReport_PerBarberBreakdown(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", "30.00", true)
	repo.addService(2, "Barba", "45.00", true)
	repo.addUser(10, "Rafael", "barber", true)
	repo.addUser(11, "Diego", "barber", true)
	repo.addUser(20, "Ana", "client", true)
	repo.addUser(21, "Bruno", "client", true)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	repo.addAppointment(models.Appointment{
		ClientID: 20, BarberID: 10, ServiceID: 1,
		ScheduledAt: base, Status: string(domain.StatusFinalized),
	})
	repo.addAppointment(models.Appointment{
		ClientID: 21, BarberID: 10, ServiceID: 2,
		ScheduledAt: base.Add(time.Hour), Status: string(domain.StatusFinalized),
	})
	repo.addAppointment(models.Appointment{
		ClientID: 20, BarberID: 11, ServiceID: 1,
		ScheduledAt: base.Add(2 * time.Hour), Status: string(domain.StatusFinalized),
	})

	report, err := NewBuildReport(repo).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, report.PerBarber, 2)

	byName := map[string]BarberBreakdown{}
	for _, bd := range report.PerBarber {
		byName[bd.BarberName] = bd
	}

	rafael := byName["Rafael"]
	assert.Equal(t, 2, rafael.Appointments)
	assert.Equal(t, 2, rafael.Clients)
	assert.True(t, rafael.Revenue.Equal(decimal.NewFromInt(75)), "got %s", rafael.Revenue)

	diego := byName["Diego"]
	assert.Equal(t, 1, diego.Appointments)
	assert.True(t, diego.Revenue.Equal(decimal.NewFromInt(30)), "got %s", diego.Revenue)
}

func TestBuildReport_SameNameBarbersStaySeparate(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", "30.00", true)
	repo.addUser(10, "Rafael", "barber", true)
	repo.addUser(11, "Rafael", "barber", true)
	repo.addUser(20, "Ana", "client", true)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	repo.addAppointment(models.Appointment{
		ClientID: 20, BarberID: 10, ServiceID: 1,
		ScheduledAt: base, Status: string(domain.StatusFinalized),
	})
	repo.addAppointment(models.Appointment{
		ClientID: 20, BarberID: 11, ServiceID: 1,
		ScheduledAt: base.Add(time.Hour), Status: string(domain.StatusFinalized),
	})

	report, err := NewBuildReport(repo).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, report.PerBarber, 2)
	for _, bd := range report.PerBarber {
		assert.Equal(t, "Rafael", bd.BarberName)
		assert.Equal(t, 1, bd.Appointments)
	}
}
