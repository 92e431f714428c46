package routes

import (
	"net/http"
	"strings"

	"clinicbook/cmd/internal/service"
	"clinicbook/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

type SlotService interface {
	GetAvailable(from, to string) ([]*service.SlotResponse, apierror.ErrorResponse)
}

type DefaultSlotRoute struct {
	SlotService SlotService
}

func NewSlotDefault(slotService SlotService) *DefaultSlotRoute {
	return &DefaultSlotRoute{SlotService: slotService}
}

func (s *DefaultSlotRoute) GetSlots(c echo.Context) error {
	from := strings.TrimSpace(c.QueryParam("from"))
	if from == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("from"))
	}

	to := strings.TrimSpace(c.QueryParam("to"))
	if to == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("to"))
	}

	slots, apierr := s.SlotService.GetAvailable(from, to)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"slots": slots}
	return c.JSON(http.StatusOK, &resp)
}
