package service

import (
	"errors"

	"clinicbook/cmd/internal/auth"
	"clinicbook/cmd/internal/domain/entity"
	"clinicbook/cmd/internal/utils"
	"clinicbook/cmd/internal/utils/apierror"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(booking *entity.Booking) error
	FindByUserID(userID string) ([]*entity.Booking, error)
	FindAll() ([]*entity.Booking, error)
}

type BookingRequest struct {
	SlotID string `json:"slotId" validate:"required"`
}

type BookingResponse struct {
	ID     string `json:"id"`
	SlotID string `json:"slotId"`
}

type BookingDetail struct {
	ID        string        `json:"id"`
	Slot      *SlotResponse `json:"slot"`
	User      *BookingUser  `json:"user,omitempty"`
	CreatedAt string        `json:"createdAt"`
}

type BookingUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DefaultBookingService struct {
	BookingRepo BookingRepository
	SlotRepo    SlotRepository
	Validate    *validator.Validate
}

func NewBookingService(bookingRepo BookingRepository, slotRepo SlotRepository, validate *validator.Validate) *DefaultBookingService {
	return &DefaultBookingService{BookingRepo: bookingRepo, SlotRepo: slotRepo, Validate: validate}
}

// Book claims a slot for the principal. Patients only. The claim itself is a
// bare insert: losing the race against a concurrent claim comes back from the
// store as a uniqueness violation, which is the sole source of SLOT_TAKEN for
// an existing slot. No retry — a taken slot stays taken.
func (b *DefaultBookingService) Book(req *BookingRequest, principal *auth.TokenData) (*BookingResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if principal.Role != entity.RolePatient {
		return nil, apierror.ForbiddenError
	}

	slot, err := b.SlotRepo.FindByID(req.SlotID)
	if err != nil {
		log.Errorf("failed to fetch slot %s: %v", req.SlotID, err)
		return nil, apierror.InternalServerError
	}
	if slot == nil {
		return nil, apierror.SlotTakenError
	}

	booking := &entity.Booking{
		ID:        uuid.NewString(),
		SlotID:    slot.ID,
		UserID:    principal.UserID,
		CreatedAt: utils.NowUTC(),
	}

	err = b.BookingRepo.Create(booking)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierror.SlotTakenError
	}
	if err != nil {
		log.Errorf("failed to create booking for slot %s: %v", slot.ID, err)
		return nil, apierror.InternalServerError
	}

	return &BookingResponse{ID: booking.ID, SlotID: booking.SlotID}, nil
}

// GetMyBookings lists the principal's own bookings, newest first.
func (b *DefaultBookingService) GetMyBookings(principal *auth.TokenData) ([]*BookingDetail, apierror.ErrorResponse) {
	bookings, err := b.BookingRepo.FindByUserID(principal.UserID)
	if err != nil {
		log.Errorf("failed to fetch bookings for user %s: %v", principal.UserID, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*BookingDetail, len(bookings))
	for i, booking := range bookings {
		response[i] = toBookingDetail(booking, false)
	}
	return response, nil
}

// GetAllBookings lists every booking with its user, newest first. Staff only
// at the route layer.
func (b *DefaultBookingService) GetAllBookings() ([]*BookingDetail, apierror.ErrorResponse) {
	bookings, err := b.BookingRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch all bookings: %v", err)
		return nil, apierror.InternalServerError
	}

	response := make([]*BookingDetail, len(bookings))
	for i, booking := range bookings {
		response[i] = toBookingDetail(booking, true)
	}
	return response, nil
}

func toBookingDetail(booking *entity.Booking, withUser bool) *BookingDetail {
	detail := &BookingDetail{
		ID:        booking.ID,
		Slot:      toSlotResponse(&booking.Slot),
		CreatedAt: utils.FormatEpoch(booking.CreatedAt),
	}
	if withUser {
		detail.User = &BookingUser{
			ID:    booking.User.ID,
			Name:  booking.User.Name,
			Email: booking.User.Email,
		}
	}
	return detail
}
