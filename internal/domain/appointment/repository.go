package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/charmcut/charmcut-api/internal/models"
)

type Repository interface {
	// -------- Shop config --------
	GetShopConfig(
		ctx context.Context,
	) (*models.ShopConfig, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertSlotFree(
		ctx context.Context,
		barberID uint,
		at time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Read side --------
	ListAgenda(
		ctx context.Context,
		barberID uint,
		from time.Time,
	) ([]models.Appointment, error)

	ListForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	// -------- Reports --------
	CountAppointments(ctx context.Context) (int64, error)
	CountAppointmentsByStatus(ctx context.Context, status Status) (int64, error)
	SumFinalizedRevenue(ctx context.Context) (decimal.Decimal, error)
	CountDistinctClients(ctx context.Context) (int64, error)
	CountActiveBarbers(ctx context.Context) (int64, error)

	ListFinalizedDetailed(
		ctx context.Context,
	) ([]models.Appointment, error)
}
