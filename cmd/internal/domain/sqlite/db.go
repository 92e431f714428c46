package sqlite

import (
	"time"

	"clinicbook/cmd/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the database and migrates the schema. TranslateError is required:
// the repositories detect booking conflicts and duplicate emails by matching
// gorm.ErrDuplicatedKey, which only exists with translation enabled.
func Init(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&entity.User{}, &entity.Slot{}, &entity.Booking{})
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
