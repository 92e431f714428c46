package entity

// Slot is a bookable half-hour interval. StartAt/EndAt are UTC epoch millis.
// The unique index on StartAt is what makes grid generation idempotent.
type Slot struct {
	ID      string `gorm:"primaryKey"`
	StartAt int64  `gorm:"uniqueIndex;not null"`
	EndAt   int64  `gorm:"not null"`
}
