package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/events"
	appointmentRepo "github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/appointment"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
	"github.com/m04kA/UCA-AdvisoryService/internal/service/appointments/models"
)

// Service сервис для работы с записями на консультации
type Service struct {
	appointmentRepo AppointmentRepository
	profileClient   ProfileServiceClient
	eventBus        EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	profileClient ProfileServiceClient,
	eventBus EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		profileClient:   profileClient,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят только её участники: студент и советник
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.StudentID != userID && appt.AdvisorID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetStudentAppointments получает историю записей студента
// Опционально фильтрует по статусу
func (s *Service) GetStudentAppointments(ctx context.Context, req *models.GetStudentAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetStudentAppointments: fetching appointments for student=%d, status=%v", req.StudentID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentAppointments: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appts, err := s.appointmentRepo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentAppointments: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentAppointments: successfully fetched %d appointments for student=%d", len(appts), req.StudentID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetAdvisorAppointments получает расписание советника с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
// Советник видит только своё расписание
func (s *Service) GetAdvisorAppointments(ctx context.Context, req *models.GetAdvisorAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetAdvisorAppointments: fetching appointments for advisor=%d, user=%d", req.AdvisorID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if err := s.checkAdvisorAccess(ctx, req.AdvisorID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAdvisorAppointments: invalid filter for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByAdvisorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdvisorAppointments: repository error for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: GetAdvisorAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdvisorAppointments: successfully fetched %d appointments for advisor=%d", len(appts), req.AdvisorID)
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет запись на консультацию
// Студент отменяет свою запись (слот освобождается),
// советник отменяет запись у себя в расписании (слот остаётся заблокированным)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	if strings.TrimSpace(req.CancellationReason) == "" {
		s.logger.Warn("Cancel: empty cancellation reason for appointment id=%d", appointmentID)
		return ErrReasonRequired
	}

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	// Определяем, от чьего имени выполняется отмена
	var actor domain.CancelActor
	switch req.UserID {
	case appt.StudentID:
		actor = domain.ActorStudent
	case appt.AdvisorID:
		actor = domain.ActorAdvisor
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, actor, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d by %s", appointmentID, actor)

	previousStatus := appt.Status
	cancelled := *appt
	cancelled.Status = domain.StatusCancelled
	cancelled.CancelledBy = &actor

	s.eventBus.Publish(events.AppointmentEvent{
		Type:           events.EventAppointmentCancelled,
		Appointment:    &cancelled,
		PreviousStatus: &previousStatus,
		OccurredAt:     time.Now(),
	})

	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только советнику записи. Отмена выполняется отдельной операцией
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if appt.AdvisorID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Отмена идёт через Cancel: там фиксируются актор и причина
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested via status update for appointment id=%d", appointmentID)
		return fmt.Errorf("%w: cancellation requires a dedicated cancel request", ErrInvalidStatus)
	}

	if !domain.CanTransition(appt.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%d",
			appt.Status, newStatus, appointmentID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)

	previousStatus := appt.Status
	updated := *appt
	updated.Status = newStatus

	s.eventBus.Publish(events.AppointmentEvent{
		Type:           events.EventAppointmentStatusChanged,
		Appointment:    &updated,
		PreviousStatus: &previousStatus,
		OccurredAt:     time.Now(),
	})

	return nil
}

// Вспомогательные методы

// checkAdvisorAccess проверяет, что пользователь запрашивает собственное
// расписание и действительно является советником
func (s *Service) checkAdvisorAccess(ctx context.Context, advisorID int64, userID int64) error {
	if advisorID != userID {
		s.logger.Warn("checkAdvisorAccess: user=%d is not advisor=%d", userID, advisorID)
		return ErrAccessDenied
	}

	user, err := s.profileClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		if errors.Is(err, profileservice.ErrUserNotFound) {
			s.logger.Warn("checkAdvisorAccess: user=%d not found", userID)
			return ErrUserNotFound
		}
		// При деградации ProfileService пропускаем проверку роли:
		// владение расписанием уже подтверждено сравнением идентификаторов
		if errors.Is(err, profileservice.ErrServiceDegraded) {
			s.logger.Warn("checkAdvisorAccess: profile service degraded, skipping role check for user=%d", userID)
			return nil
		}
		s.logger.Error("checkAdvisorAccess: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkAdvisorAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdvisor() {
		s.logger.Warn("checkAdvisorAccess: user=%d is not an advisor", userID)
		return ErrAccessDenied
	}

	return nil
}
