package service

import (
	"path/filepath"
	"testing"
	"time"

	"clinicbook/cmd/internal/auth"
	"clinicbook/cmd/internal/domain/sqlite"
	"clinicbook/cmd/internal/domain/sqlite/repository"
	"clinicbook/cmd/internal/utils/validators"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("hasupper", validators.HasUpper))
	require.NoError(t, validate.RegisterValidation("haslower", validators.HasLower))
	require.NoError(t, validate.RegisterValidation("hasdigit", validators.HasDigit))
	require.NoError(t, validate.RegisterValidation("hasspecial", validators.HasSpecial))
	return validate
}

type testEnv struct {
	db          *gorm.DB
	slotRepo    *repository.DefaultSlotRepository
	bookingRepo *repository.DefaultBookingRepository
	userRepo    *repository.DefaultUserRepository

	slots    *DefaultSlotService
	bookings *DefaultBookingService
	users    *DefaultUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	validate := newTestValidator(t)

	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &testEnv{
		db:          db,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		slots:       NewSlotService(slotRepo),
		bookings:    NewBookingService(bookingRepo, slotRepo, validate),
		users:       NewUserService(userRepo, validate, auth.NewTokens("test-secret", time.Hour)),
	}
}
