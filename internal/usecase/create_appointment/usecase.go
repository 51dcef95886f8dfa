package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/events"
	"github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/appointment"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
)

// UseCase создание записи на консультацию
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	profileClient    ProfileServiceClient
	txManager        TransactionManager
	eventBus         EventPublisher
	timeProvider     TimeProvider
	logger           Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		profileClient:    profileClient,
		txManager:        txManager,
		eventBus:         eventBus,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute создаёт запись студента к советнику на выбранный слот.
//
// Проверки до транзакции: валидация входных данных, даты и ролей пользователей.
// Внутри сериализуемой транзакции: лимит одной активной записи в день,
// существование слота в окнах доступности и отсутствие конфликта с другими
// записями. Частичные уникальные индексы БД дублируют обе проверки на случай
// гонки параллельных запросов.
func (u *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Валидация даты: не в прошлом, будний день, горизонт бронирования
	now := u.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		return nil, err
	}

	// 3. Проверка ролей через ProfileService
	student, err := u.profileClient.GetUser(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, profileservice.ErrUserNotFound) {
			return nil, ErrStudentNotFound
		}
		u.logger.Error("create_appointment.Execute - failed to get student %d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to verify student: %v", ErrInternal, err)
	}
	if !student.IsStudent() {
		return nil, ErrNotAStudent
	}

	advisor, err := u.profileClient.GetUser(ctx, req.AdvisorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrUserNotFound) {
			return nil, ErrAdvisorNotFound
		}
		u.logger.Error("create_appointment.Execute - failed to get advisor %d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to verify advisor: %v", ErrInternal, err)
	}
	if !advisor.IsAdvisor() {
		return nil, ErrNotAnAdvisor
	}

	var created *domain.Appointment

	// 4. Создание записи в сериализуемой транзакции
	txErr := u.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 4.1. Лимит: не более одной активной записи студента в день
		active, err := u.appointmentRepo.GetActiveByStudentAndDate(ctx, req.StudentID, req.Date)
		if err != nil {
			return fmt.Errorf("failed to check daily limit: %w", err)
		}
		if len(active) > 0 {
			return ErrDailyCapExceeded
		}

		// 4.2. Запрошенное время должно совпадать с одним из слотов советника
		windows, err := u.availabilityRepo.GetByAdvisorAndDay(ctx, req.AdvisorID, domain.WeekdayIndex(req.Date))
		if err != nil {
			return fmt.Errorf("failed to get availability windows: %w", err)
		}

		slot := findCandidateSlot(windows, req.Date, req.StartTime)
		if slot == nil {
			return ErrInvalidTimeSlot
		}

		// 4.3. Проверка конфликта с существующими записями (с блокировкой FOR UPDATE)
		existing, err := u.appointmentRepo.GetByAdvisorWithFilter(ctx, domain.AdvisorAppointmentsFilter{
			AdvisorID:       req.AdvisorID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: true,
		})
		if err != nil {
			return fmt.Errorf("failed to get existing appointments: %w", err)
		}

		if slotBlocked(req.StartTime, existing) {
			return ErrSlotTaken
		}

		created, err = u.appointmentRepo.Create(ctx, &domain.Appointment{
			StudentID:       req.StudentID,
			AdvisorID:       req.AdvisorID,
			AppointmentDate: req.Date,
			StartTime:       slot.Start,
			EndTime:         slot.End,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return nil
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, ErrDailyCapExceeded),
			errors.Is(txErr, ErrInvalidTimeSlot),
			errors.Is(txErr, ErrSlotTaken):
			return nil, txErr
		case errors.Is(txErr, appointment.ErrDailyCapConflict):
			// Гонка: параллельная транзакция успела создать запись на этот день
			return nil, ErrDailyCapExceeded
		case errors.Is(txErr, appointment.ErrSlotConflict):
			return nil, ErrSlotTaken
		default:
			u.logger.Error("create_appointment.Execute - transaction failed: %v", txErr)
			return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
		}
	}

	u.logger.Info("create_appointment.Execute - created appointment %d: student %d, advisor %d, %s %s",
		created.ID, created.StudentID, created.AdvisorID, created.AppointmentDate.Format(domain.DateFormat), created.StartTime)

	u.eventBus.Publish(events.AppointmentEvent{
		Type:        events.EventAppointmentCreated,
		Appointment: created,
		OccurredAt:  time.Now(),
	})

	return buildResponse(created), nil
}

func buildResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:              appt.ID,
		StudentID:       appt.StudentID,
		AdvisorID:       appt.AdvisorID,
		AppointmentDate: appt.AppointmentDate,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime,
		Status:          string(appt.Status),
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
