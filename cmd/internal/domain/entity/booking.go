package entity

// Booking claims a slot for a user. The unique index on SlotID is the only
// double-booking guard in the system; concurrent claims race on it and the
// loser gets a uniqueness violation back.
type Booking struct {
	ID        string `gorm:"primaryKey"`
	SlotID    string `gorm:"uniqueIndex;not null"` // References: slots(id)
	UserID    string `gorm:"not null"`             // References: users(id)
	CreatedAt int64  `gorm:"not null"`

	// Relations
	Slot Slot `gorm:"foreignKey:SlotID;references:ID"`
	User User `gorm:"foreignKey:UserID;references:ID"`
}
