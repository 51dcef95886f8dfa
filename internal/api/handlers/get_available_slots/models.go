package get_available_slots

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	getAvailableSlots "github.com/m04kA/UCA-AdvisoryService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "09:30"
	IsBooked     bool   `json:"isBooked"`
	IsOwnBooking bool   `json:"isOwnBooking"`
}

// SlotsResponse HTTP модель ответа со слотами на дату
type SlotsResponse struct {
	AdvisorID int64          `json:"advisorId"`
	Date      string         `json:"date"` // "2026-09-15"
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает модель use case из параметров запроса
func ToUseCaseRequest(advisorID, requestingUserID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		AdvisorID:        advisorID,
		RequestingUserID: requestingUserID,
		Date:             date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:    slot.StartTime.String(),
			EndTime:      slot.EndTime.String(),
			IsBooked:     slot.IsBooked,
			IsOwnBooking: slot.IsOwnBooking,
		}
	}

	return &SlotsResponse{
		AdvisorID: resp.AdvisorID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
