package database

import (
	"log"

	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs AutoMigrate for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.RefreshToken{},
		&model.Menu{},
		&model.MenuTranslation{},
		&model.RolePermission{},
		&model.Category{},
		&model.CategoryTranslation{},
		&model.Content{},
		&model.ContentTranslation{},
		&model.Label{},
		&model.LabelTranslation{},
		&model.Setting{},
		&model.Notification{},
		&model.AuditLog{},
	)
}
