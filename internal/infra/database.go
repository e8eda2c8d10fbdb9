package infra

import (
	"fmt"

	"storehub/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.StoreMember{},
		&model.Category{},
		&model.Storage{},
		&model.Product{},
		&model.ProductPack{},
		&model.ProductBarcode{},
		&model.InventoryLot{},
		&model.StorageActiveLot{},
		&model.InventoryBalance{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot fully
// handle (partial indexes). Safe to re-run on an already-patched DB.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one live primary storage per store. GORM can only express
		// plain unique indexes, so the WHERE clause goes through raw DDL.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_storages_one_primary') THEN
		    CREATE UNIQUE INDEX idx_storages_one_primary
		        ON storages (store_id)
		        WHERE is_primary AND NOT is_deleted;
		  END IF;
		END $$`,
		// Open-lot listing per storage is the hottest inventory query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_lots_open_per_storage') THEN
		    CREATE INDEX idx_lots_open_per_storage
		        ON inventory_lots (storage_id)
		        WHERE status = 'OPEN';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
