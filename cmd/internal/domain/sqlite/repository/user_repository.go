package repository

import (
	"errors"

	"clinicbook/cmd/internal/domain/entity"
	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (u *DefaultUserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := u.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user as-is, timestamps included; a duplicate email comes
// back from the unique index as gorm.ErrDuplicatedKey. Users are never
// updated, so this must stay a plain insert: gorm's upsert path would restamp
// UpdatedAt in epoch seconds and break the epoch-millis convention.
func (u *DefaultUserRepository) Create(user *entity.User) error {
	return u.db.Create(user).Error
}
