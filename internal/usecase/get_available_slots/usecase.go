package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	profileClient "github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
)

// UseCase use case получения слотов советника на дату с пометками занятости
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	profileClient    ProfileServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		profileClient:    profileClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: advisor=%d, user=%d, date=%s",
		req.AdvisorID, req.RequestingUserID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты (не в прошлом, в пределах горизонта)
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем советника через ProfileService.
	// При деградации сервиса профилей продолжаем без проверки -
	// просмотр слотов не должен падать из-за недоступного справочника.
	advisor, err := uc.profileClient.GetUserWithGracefulDegradation(ctx, req.AdvisorID)
	switch {
	case errors.Is(err, profileClient.ErrUserNotFound):
		uc.logger.Warn("GetAvailableSlots: advisor id=%d not found", req.AdvisorID)
		return nil, ErrAdvisorNotFound
	case errors.Is(err, profileClient.ErrServiceDegraded):
		uc.logger.Warn("GetAvailableSlots: profile service degraded, skipping advisor check for id=%d", req.AdvisorID)
	case err != nil:
		uc.logger.Error("GetAvailableSlots: failed to get advisor id=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to get advisor: %v", ErrInternal, err)
	case !advisor.IsAdvisor():
		uc.logger.Warn("GetAvailableSlots: user id=%d has role %s, not advisor", req.AdvisorID, advisor.Role)
		return nil, ErrNotAnAdvisor
	}

	// 4. Выходной день - пустой список без обращения к БД
	if !domain.IsBusinessDay(req.Date) {
		uc.logger.Info("GetAvailableSlots: %s is a weekend, no slots", req.Date.Format(domain.DateFormat))
		return &Response{
			AdvisorID: req.AdvisorID,
			Date:      req.Date,
			Slots:     []Slot{},
		}, nil
	}

	// 5. Получаем окна доступности советника на день недели
	windows, err := uc.availabilityRepo.GetByAdvisorAndDay(ctx, req.AdvisorID, domain.WeekdayIndex(req.Date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты-кандидаты и убираем дубли от пересекающихся окон
	candidates, err := generateCandidateSlots(windows, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	candidates = dedupeByStart(candidates)

	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no availability for advisor=%d on %s",
			req.AdvisorID, req.Date.Format(domain.DateFormat))
		return &Response{
			AdvisorID: req.AdvisorID,
			Date:      req.Date,
			Slots:     []Slot{},
		}, nil
	}

	// 7. Получаем ВСЕ записи советника на дату, включая отменённые:
	// запись, отменённая советником, продолжает блокировать слот
	filter := domain.AdvisorAppointmentsFilter{
		AdvisorID:       req.AdvisorID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: true,
	}

	appointments, err := uc.appointmentRepo.GetByAdvisorWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Помечаем занятость каждого слота
	slots := annotateSlots(candidates, appointments, req.RequestingUserID)

	uc.logger.Info("GetAvailableSlots: %d slots for advisor=%d on %s",
		len(slots), req.AdvisorID, req.Date.Format(domain.DateFormat))

	return &Response{
		AdvisorID: req.AdvisorID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}
