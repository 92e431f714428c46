package service

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"clinicbook/cmd/internal/auth"
	"clinicbook/cmd/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientPrincipal() *auth.TokenData {
	return &auth.TokenData{UserID: uuid.NewString(), Role: entity.RolePatient}
}

func staffPrincipal() *auth.TokenData {
	return &auth.TokenData{UserID: uuid.NewString(), Role: entity.RoleStaff}
}

func seedOneSlot(t *testing.T, env *testEnv, start time.Time) string {
	t.Helper()

	require.NoError(t, env.slotRepo.FindOrCreate(start.UnixMilli(), start.Add(30*time.Minute).UnixMilli()))
	slots, err := env.slotRepo.FindAvailableFrom(start.UnixMilli())
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	return slots[0].ID
}

func TestBookRequiresSlotID(t *testing.T) {
	env := newTestEnv(t)

	booking, apierr := env.bookings.Book(&BookingRequest{}, patientPrincipal())
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
	assert.Nil(t, booking)
}

func TestBookForbiddenForStaff(t *testing.T) {
	env := newTestEnv(t)
	slotID := seedOneSlot(t, env, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))

	booking, apierr := env.bookings.Book(&BookingRequest{SlotID: slotID}, staffPrincipal())
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())
	assert.Nil(t, booking)

	// No booking may exist after a forbidden attempt.
	all, err := env.bookingRepo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBookUnknownSlotIsTaken(t *testing.T) {
	env := newTestEnv(t)

	booking, apierr := env.bookings.Book(&BookingRequest{SlotID: uuid.NewString()}, patientPrincipal())
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
	assert.Nil(t, booking)
}

func TestBookSucceedsThenConflicts(t *testing.T) {
	env := newTestEnv(t)
	slotID := seedOneSlot(t, env, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))

	booking, apierr := env.bookings.Book(&BookingRequest{SlotID: slotID}, patientPrincipal())
	require.Nil(t, apierr)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, slotID, booking.SlotID)

	// Second claim on the same slot loses, even for the same patient.
	second, apierr := env.bookings.Book(&BookingRequest{SlotID: slotID}, patientPrincipal())
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
	assert.Nil(t, second)
}

func TestBookConcurrentClaimsExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	slotID := seedOneSlot(t, env, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))

	const patients = 12
	type result struct {
		booking *BookingResponse
		code    int
	}
	results := make(chan result, patients)

	var wg sync.WaitGroup
	for i := 0; i < patients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			booking, apierr := env.bookings.Book(&BookingRequest{SlotID: slotID}, patientPrincipal())
			if apierr != nil {
				results <- result{code: apierr.Code()}
				return
			}
			results <- result{booking: booking, code: http.StatusCreated}
		}()
	}
	wg.Wait()
	close(results)

	var created, conflicted int
	for r := range results {
		switch r.code {
		case http.StatusCreated:
			created++
			assert.NotEmpty(t, r.booking.ID)
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status %d", r.code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, patients-1, conflicted)
}

func TestMyBookingsOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	me := patientPrincipal()
	other := patientPrincipal()

	mine := seedOneSlot(t, env, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	theirs := seedOneSlot(t, env, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))

	_, apierr := env.bookings.Book(&BookingRequest{SlotID: mine}, me)
	require.Nil(t, apierr)
	_, apierr = env.bookings.Book(&BookingRequest{SlotID: theirs}, other)
	require.Nil(t, apierr)

	bookings, apierr := env.bookings.GetMyBookings(me)
	require.Nil(t, apierr)
	require.Len(t, bookings, 1)
	assert.Equal(t, mine, bookings[0].Slot.ID)
	assert.Equal(t, "2024-03-04T09:00:00Z", bookings[0].Slot.StartAt)
	assert.Nil(t, bookings[0].User)
}

func TestAllBookingsIncludeUser(t *testing.T) {
	env := newTestEnv(t)

	user, apierr := env.users.Register(&RegisterRequest{
		Name: "Pat Doe", Email: "pat@example.com", Password: "Sup3r-secret",
	})
	require.Nil(t, apierr)

	slotID := seedOneSlot(t, env, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	principal := &auth.TokenData{UserID: user.ID, Role: entity.RolePatient}
	_, apierr = env.bookings.Book(&BookingRequest{SlotID: slotID}, principal)
	require.Nil(t, apierr)

	bookings, apierr := env.bookings.GetAllBookings()
	require.Nil(t, apierr)
	require.Len(t, bookings, 1)
	require.NotNil(t, bookings[0].User)
	assert.Equal(t, "pat@example.com", bookings[0].User.Email)
	assert.Equal(t, slotID, bookings[0].Slot.ID)
}
