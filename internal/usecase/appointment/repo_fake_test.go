package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/models"
)

// fakeRepo is an in-memory domain.Repository for use case tests.
type fakeRepo struct {
	cfg          *models.ShopConfig
	services     map[uint]*models.Service
	users        map[uint]*models.User
	appointments map[uint]*models.Appointment
	nextID       uint

	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		cfg: &models.ShopConfig{
			ID:                1,
			Name:              "CharmCut",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 120,
		},
		services:     map[uint]*models.Service{},
		users:        map[uint]*models.User{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *fakeRepo) addService(id uint, name string, price string, active bool) *models.Service {
	p, _ := decimal.NewFromString(price)
	svc := &models.Service{ID: id, Name: name, Price: p, DurationMin: 30, Active: active}
	r.services[id] = svc
	return svc
}

func (r *fakeRepo) addUser(id uint, name, role string, active bool) *models.User {
	u := &models.User{ID: id, Name: name, Role: role, Active: active}
	r.users[id] = u
	return u
}

func (r *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = &ap
	return r.appointments[ap.ID]
}

func (r *fakeRepo) GetShopConfig(_ context.Context) (*models.ShopConfig, error) {
	return r.cfg, nil
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != "barber" {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

// CreateAppointment mirrors the partial unique index on
// (barber_id, scheduled_at): only non-terminal rows contend for a slot.
func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	for _, other := range r.appointments {
		if other.BarberID == ap.BarberID &&
			other.ScheduledAt.Equal(ap.ScheduledAt) &&
			!domain.Status(other.Status).Terminal() {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	r.nextID++
	ap.ID = r.nextID
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) AssertSlotFree(_ context.Context, barberID uint, at time.Time) error {
	for _, ap := range r.appointments {
		terminal := domain.Status(ap.Status).Terminal()
		if ap.BarberID == barberID && ap.ScheduledAt.Equal(at) && !terminal {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) ListAgenda(_ context.Context, barberID uint, from time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if ap.ScheduledAt.Before(from) {
			continue
		}
		if domain.Status(ap.Status).Terminal() {
			continue
		}
		cp := *ap
		r.hydrate(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *fakeRepo) ListForClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID != clientID {
			continue
		}
		cp := *ap
		r.hydrate(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.After(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *fakeRepo) CountAppointments(_ context.Context) (int64, error) {
	return int64(len(r.appointments)), nil
}

func (r *fakeRepo) CountAppointmentsByStatus(_ context.Context, status domain.Status) (int64, error) {
	var n int64
	for _, ap := range r.appointments {
		if ap.Status == string(status) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) SumFinalizedRevenue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, ap := range r.appointments {
		if ap.Status != string(domain.StatusFinalized) {
			continue
		}
		if svc, ok := r.services[ap.ServiceID]; ok {
			total = total.Add(svc.Price)
		}
	}
	return total, nil
}

func (r *fakeRepo) CountDistinctClients(_ context.Context) (int64, error) {
	seen := map[uint]bool{}
	for _, ap := range r.appointments {
		seen[ap.ClientID] = true
	}
	return int64(len(seen)), nil
}

func (r *fakeRepo) CountActiveBarbers(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == "barber" && u.Active {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) ListFinalizedDetailed(_ context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Status != string(domain.StatusFinalized) {
			continue
		}
		cp := *ap
		r.hydrate(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.After(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *fakeRepo) hydrate(ap *models.Appointment) {
	if u, ok := r.users[ap.ClientID]; ok {
		ap.Client = *u
	}
	if u, ok := r.users[ap.BarberID]; ok {
		ap.Barber = *u
	}
	if svc, ok := r.services[ap.ServiceID]; ok {
		ap.Service = *svc
	}
}

var _ domain.Repository = (*fakeRepo)(nil)
