package models

import (
	"errors"
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetStudentAppointmentsRequest запрос на получение записей студента
type GetStudentAppointmentsRequest struct {
	StudentID int64   `json:"studentId"`
	Status    *string `json:"status,omitempty"`
}

// GetAdvisorAppointmentsRequest запрос на получение записей советника
type GetAdvisorAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	AdvisorID       int64      `json:"advisorId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAdvisorAppointmentsRequest) ToDomainFilter() (domain.AdvisorAppointmentsFilter, error) {
	filter := domain.AdvisorAppointmentsFilter{
		AdvisorID:       r.AdvisorID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	StudentID       int64  `json:"studentId"`
	AdvisorID       int64  `json:"advisorId"`
	AppointmentDate string `json:"appointmentDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`       // "09:00"
	EndTime         string `json:"endTime"`         // "09:30"
	Status          string `json:"status"`

	Notes *string `json:"notes,omitempty"`

	CancelledBy               *string `json:"cancelledBy,omitempty"`
	StudentCancellationReason *string `json:"studentCancellationReason,omitempty"`
	AdvisorCancellationReason *string `json:"advisorCancellationReason,omitempty"`
	CancelledAt               *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                        a.ID,
		StudentID:                 a.StudentID,
		AdvisorID:                 a.AdvisorID,
		AppointmentDate:           a.AppointmentDate.Format(domain.DateFormat),
		StartTime:                 a.StartTime.String(),
		EndTime:                   a.EndTime.String(),
		Status:                    string(a.Status),
		Notes:                     a.Notes,
		StudentCancellationReason: a.StudentCancellationReason,
		AdvisorCancellationReason: a.AdvisorCancellationReason,
		CreatedAt:                 a.CreatedAt,
		UpdatedAt:                 a.UpdatedAt,
	}

	if a.CancelledBy != nil {
		cancelledBy := string(*a.CancelledBy)
		resp.CancelledBy = &cancelledBy
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
