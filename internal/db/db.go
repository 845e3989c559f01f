package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/charmcut/charmcut-api/internal/config"
	"github.com/charmcut/charmcut-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.ShopConfig{},
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE shop_configs
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Partial unique index: gorm tags cannot express the WHERE clause. Only
	// live appointments contend for a slot; terminal rows stay as history
	// without blocking a rebooking. The DROP clears the full index earlier
	// schema versions created.
	db.Exec(`DROP INDEX IF EXISTS idx_barber_slot`)
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_barber_slot_active
        ON appointments (barber_id, scheduled_at)
        WHERE status NOT IN ('finalized', 'cancelled', 'no_show')
    `)

	return db
}
