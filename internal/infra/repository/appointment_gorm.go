package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Shop config
// --------------------------------------------------

func (r *AppointmentGormRepository) GetShopConfig(
	ctx context.Context,
) (*models.ShopConfig, error) {

	var cfg models.ShopConfig
	if err := r.db.WithContext(ctx).Order("id ASC").First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, "barber").
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Create(ap).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

func (r *AppointmentGormRepository) AssertSlotFree(
	ctx context.Context,
	barberID uint,
	at time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND scheduled_at = ? AND status NOT IN ('finalized', 'cancelled', 'no_show')",
			barberID,
			at,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Read side
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAgenda(
	ctx context.Context,
	barberID uint,
	from time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND scheduled_at >= ? AND status NOT IN ('finalized', 'cancelled', 'no_show')",
			barberID, from,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("scheduled_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Reports
// --------------------------------------------------

func (r *AppointmentGormRepository) CountAppointments(
	ctx context.Context,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) CountAppointmentsByStatus(
	ctx context.Context,
	status domain.Status,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) SumFinalizedRevenue(
	ctx context.Context,
) (decimal.Decimal, error) {

	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("COALESCE(SUM(services.price), 0)").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.status = ?", "finalized").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *AppointmentGormRepository) CountDistinctClients(
	ctx context.Context,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Distinct("client_id").
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) CountActiveBarbers(
	ctx context.Context,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND active = true", "barber").
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) ListFinalizedDetailed(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Service").
		Where("status = ?", "finalized").
		Order("scheduled_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
