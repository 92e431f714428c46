package repository

import (
	"errors"

	"clinicbook/cmd/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *DefaultSlotRepository {
	return &DefaultSlotRepository{db: db}
}

func (s *DefaultSlotRepository) FindByID(id string) (*entity.Slot, error) {
	var slot entity.Slot
	err := s.db.First(&slot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindOrCreate inserts a slot for the given interval unless one with the same
// start already exists. The existence check and the insert are a single
// statement (INSERT .. ON CONFLICT DO NOTHING on the start_at unique index),
// so concurrent generation over overlapping ranges cannot create duplicates.
func (s *DefaultSlotRepository) FindOrCreate(startAt, endAt int64) error {
	slot := &entity.Slot{
		ID:      uuid.NewString(),
		StartAt: startAt,
		EndAt:   endAt,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "start_at"}},
		DoNothing: true,
	}).Create(slot).Error
}

// FindAvailable returns unbooked slots fully inside [from, to], ascending.
func (s *DefaultSlotRepository) FindAvailable(from, to int64) ([]*entity.Slot, error) {
	var slots []*entity.Slot
	err := s.db.
		Where("start_at >= ?", from).
		Where("end_at <= ?", to).
		Where("id NOT IN (?)", s.bookedSlotIDs()).
		Order("start_at asc").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// FindAvailableFrom returns unbooked slots starting at or after `from`,
// ascending, with no upper bound. Used after a backfill to return the freshly
// generated window.
func (s *DefaultSlotRepository) FindAvailableFrom(from int64) ([]*entity.Slot, error) {
	var slots []*entity.Slot
	err := s.db.
		Where("start_at >= ?", from).
		Where("id NOT IN (?)", s.bookedSlotIDs()).
		Order("start_at asc").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *DefaultSlotRepository) bookedSlotIDs() *gorm.DB {
	return s.db.Model(&entity.Booking{}).Select("slot_id")
}
