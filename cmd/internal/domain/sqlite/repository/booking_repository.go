package repository

import (
	"clinicbook/cmd/internal/domain/entity"
	"gorm.io/gorm"
)

type DefaultBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *DefaultBookingRepository {
	return &DefaultBookingRepository{db: db}
}

// Create is the atomic claim primitive. There is no availability pre-check
// here on purpose: whether the slot is free is decided by the unique index on
// bookings.slot_id at insert time. A lost race surfaces as
// gorm.ErrDuplicatedKey and nothing else.
func (b *DefaultBookingRepository) Create(booking *entity.Booking) error {
	return b.db.Create(booking).Error
}

func (b *DefaultBookingRepository) FindByUserID(userID string) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := b.db.
		Preload("Slot").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (b *DefaultBookingRepository) FindAll() ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	err := b.db.
		Preload("Slot").
		Preload("User").
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}
