package models

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// Request модели

// UpsertWindowRequest запрос на создание или обновление окна доступности.
// Окно идентифицируется парой (день недели, время начала): повторный запрос
// с той же парой обновляет существующее окно
type UpsertWindowRequest struct {
	AdvisorID   int64            `json:"advisorId"`
	DayOfWeek   int              `json:"dayOfWeek"` // 0 = понедельник ... 4 = пятница
	StartTime   types.TimeString `json:"startTime"` // "09:00"
	EndTime     types.TimeString `json:"endTime"`   // "12:00"
	IsAvailable bool             `json:"isAvailable"`
}

// ToDomainWindow конвертирует request в domain модель
func (r *UpsertWindowRequest) ToDomainWindow() *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		AdvisorID:   r.AdvisorID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
	}
}

// ToggleWindowRequest запрос на включение/отключение окна доступности
type ToggleWindowRequest struct {
	UserID      int64 `json:"userId"`
	IsAvailable bool  `json:"isAvailable"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID          int64  `json:"id"`
	AdvisorID   int64  `json:"advisorId"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:          w.ID,
		AdvisorID:   w.AdvisorID,
		DayOfWeek:   w.DayOfWeek,
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		IsAvailable: w.IsAvailable,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	if windows == nil {
		return &WindowListResponse{
			Windows: []WindowResponse{},
		}
	}

	resp := &WindowListResponse{
		Windows: make([]WindowResponse, len(windows)),
	}

	for i, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows[i] = *windowResp
		}
	}

	return resp
}
