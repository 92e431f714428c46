package routes

import (
	"net/http"

	"clinicbook/cmd/internal/auth"
	"clinicbook/cmd/internal/service"
	"clinicbook/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

type BookingService interface {
	Book(req *service.BookingRequest, principal *auth.TokenData) (*service.BookingResponse, apierror.ErrorResponse)
	GetMyBookings(principal *auth.TokenData) ([]*service.BookingDetail, apierror.ErrorResponse)
	GetAllBookings() ([]*service.BookingDetail, apierror.ErrorResponse)
}

type DefaultBookingRoute struct {
	BookingService BookingService
}

func NewBookingDefault(bookingService BookingService) *DefaultBookingRoute {
	return &DefaultBookingRoute{BookingService: bookingService}
}

func (b *DefaultBookingRoute) CreateBooking(c echo.Context) error {
	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	principal := auth.Principal(c)
	if principal == nil {
		return c.JSON(apierror.MissingAuthError.Code(), apierror.MissingAuthError)
	}

	booking, apierr := b.BookingService.Book(&req, principal)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (b *DefaultBookingRoute) GetMyBookings(c echo.Context) error {
	principal := auth.Principal(c)
	if principal == nil {
		return c.JSON(apierror.MissingAuthError.Code(), apierror.MissingAuthError)
	}

	bookings, apierr := b.BookingService.GetMyBookings(principal)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"bookings": bookings}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookingRoute) GetAllBookings(c echo.Context) error {
	bookings, apierr := b.BookingService.GetAllBookings()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"bookings": bookings}
	return c.JSON(http.StatusOK, &resp)
}
