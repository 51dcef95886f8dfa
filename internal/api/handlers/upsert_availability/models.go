package upsert_availability

import (
	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability/models"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// UpsertWindowRequest HTTP request model
type UpsertWindowRequest struct {
	DayOfWeek   int    `json:"dayOfWeek"` // 0 = понедельник ... 4 = пятница
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "12:00"
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertWindowRequest) ToServiceRequest(advisorID int64) (*models.UpsertWindowRequest, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	// Окно по умолчанию включено
	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return &models.UpsertWindowRequest{
		AdvisorID:   advisorID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: isAvailable,
	}, nil
}
