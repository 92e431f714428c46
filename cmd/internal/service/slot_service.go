package service

import (
	"time"

	"clinicbook/cmd/internal/domain/entity"
	"clinicbook/cmd/internal/schedule"
	"clinicbook/cmd/internal/utils"
	"clinicbook/cmd/internal/utils/apierror"
	"github.com/labstack/gommon/log"
)

// BackfillDays is the size of the grid generated when availability comes back
// empty, and the size of the grid seeded at startup.
const BackfillDays = 7

type SlotRepository interface {
	FindByID(id string) (*entity.Slot, error)
	FindOrCreate(startAt, endAt int64) error
	FindAvailable(from, to int64) ([]*entity.Slot, error)
	FindAvailableFrom(from int64) ([]*entity.Slot, error)
}

type SlotResponse struct {
	ID      string `json:"id"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

type DefaultSlotService struct {
	SlotRepo SlotRepository
}

func NewSlotService(slotRepo SlotRepository) *DefaultSlotService {
	return &DefaultSlotService{SlotRepo: slotRepo}
}

// GetAvailable lists unbooked slots in [from 00:00:00, to 23:59:59] UTC,
// ascending by start. When the window has nothing at all, it assumes no future
// grid exists yet: it generates the next BackfillDays days starting tomorrow
// and returns that window instead, which may lie entirely outside the
// requested range. Callers must not assume the response matches the request
// bounds on that path.
func (s *DefaultSlotService) GetAvailable(fromStr, toStr string) ([]*SlotResponse, apierror.ErrorResponse) {
	from, err := time.Parse(time.DateOnly, fromStr)
	if err != nil {
		return nil, apierror.InvalidRangeError
	}
	to, err := time.Parse(time.DateOnly, toStr)
	if err != nil {
		return nil, apierror.InvalidRangeError
	}

	windowStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)

	slots, err := s.SlotRepo.FindAvailable(windowStart.UnixMilli(), windowEnd.UnixMilli())
	if err != nil {
		log.Errorf("failed to list available slots [%s - %s]: %v", fromStr, toStr, err)
		return nil, apierror.InternalServerError
	}

	if len(slots) == 0 {
		slots, err = s.backfill()
		if err != nil {
			log.Errorf("failed to backfill slot grid: %v", err)
			return nil, apierror.InternalServerError
		}
	}

	response := make([]*SlotResponse, len(slots))
	for i, slot := range slots {
		response[i] = toSlotResponse(slot)
	}
	return response, nil
}

func (s *DefaultSlotService) backfill() ([]*entity.Slot, error) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	for _, r := range schedule.Generate(tomorrow, BackfillDays) {
		if err := s.SlotRepo.FindOrCreate(r.Start.UnixMilli(), r.End.UnixMilli()); err != nil {
			return nil, err
		}
	}

	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)
	return s.SlotRepo.FindAvailableFrom(dayStart.UnixMilli())
}

func toSlotResponse(slot *entity.Slot) *SlotResponse {
	return &SlotResponse{
		ID:      slot.ID,
		StartAt: utils.FormatEpoch(slot.StartAt),
		EndAt:   utils.FormatEpoch(slot.EndAt),
	}
}
