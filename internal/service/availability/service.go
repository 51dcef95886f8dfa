package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	availabilityRepo "github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/availability"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability/models"
)

// Service сервис для управления окнами доступности советников
type Service struct {
	availabilityRepo AvailabilityRepository
	profileClient    ProfileServiceClient
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		profileClient:    profileClient,
		logger:           logger,
	}
}

// List возвращает все окна доступности советника, включая отключённые.
// Доступно любому аутентифицированному пользователю: студенты видят
// расписание до выбора слота
func (s *Service) List(ctx context.Context, advisorID int64) (*models.WindowListResponse, error) {
	s.logger.Info("List: fetching availability windows for advisor=%d", advisorID)

	windows, err := s.availabilityRepo.GetByAdvisor(ctx, advisorID)
	if err != nil {
		s.logger.Error("List: repository error for advisor=%d: %v", advisorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d windows for advisor=%d", len(windows), advisorID)
	return models.FromDomainWindowList(windows), nil
}

// Upsert создает окно доступности или обновляет существующее с тем же
// днём недели и временем начала. Доступно только самому советнику
func (s *Service) Upsert(ctx context.Context, userID int64, req *models.UpsertWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Upsert: upserting window for advisor=%d by user=%d, day=%d, %s-%s",
		req.AdvisorID, userID, req.DayOfWeek, req.StartTime, req.EndTime)

	if err := validateWindow(req); err != nil {
		s.logger.Warn("Upsert: invalid window for advisor=%d: %v", req.AdvisorID, err)
		return nil, err
	}

	if err := s.checkAdvisorAccess(ctx, req.AdvisorID, userID); err != nil {
		return nil, err
	}

	window, err := s.availabilityRepo.Upsert(ctx, req.ToDomainWindow())
	if err != nil {
		s.logger.Error("Upsert: repository error for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully upserted window id=%d for advisor=%d", window.ID, window.AdvisorID)
	return models.FromDomainWindow(window), nil
}

// Toggle включает или отключает окно доступности без удаления.
// Отключённое окно не генерирует слоты, но сохраняет настройки
func (s *Service) Toggle(ctx context.Context, windowID int64, req *models.ToggleWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Toggle: setting window id=%d isAvailable=%v by user=%d", windowID, req.IsAvailable, req.UserID)

	window, err := s.getOwnedWindow(ctx, windowID, req.UserID, "Toggle")
	if err != nil {
		return nil, err
	}

	if err := s.availabilityRepo.SetAvailable(ctx, windowID, req.IsAvailable); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("Toggle: window id=%d not found during update", windowID)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("Toggle: repository error for window id=%d: %v", windowID, err)
		return nil, fmt.Errorf("%w: Toggle - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Toggle: successfully set window id=%d isAvailable=%v", windowID, req.IsAvailable)

	window.IsAvailable = req.IsAvailable
	return models.FromDomainWindow(window), nil
}

// Delete удаляет окно доступности советника.
// Существующие записи на консультации при этом не отменяются
func (s *Service) Delete(ctx context.Context, windowID int64, userID int64) error {
	s.logger.Info("Delete: deleting window id=%d by user=%d", windowID, userID)

	if _, err := s.getOwnedWindow(ctx, windowID, userID, "Delete"); err != nil {
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, windowID); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found during delete", windowID)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", windowID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted window id=%d", windowID)
	return nil
}

// Вспомогательные методы

// getOwnedWindow получает окно и проверяет, что оно принадлежит пользователю
func (s *Service) getOwnedWindow(ctx context.Context, windowID int64, userID int64, op string) (*domain.AvailabilityWindow, error) {
	window, err := s.availabilityRepo.GetByID(ctx, windowID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("%s: window id=%d not found", op, windowID)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("%s: repository error for window id=%d: %v", op, windowID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if window.AdvisorID != userID {
		s.logger.Warn("%s: access denied for user=%d to window id=%d", op, userID, windowID)
		return nil, ErrAccessDenied
	}

	return window, nil
}

// checkAdvisorAccess проверяет, что пользователь управляет собственным
// расписанием и имеет роль советника
func (s *Service) checkAdvisorAccess(ctx context.Context, advisorID int64, userID int64) error {
	if advisorID != userID {
		s.logger.Warn("checkAdvisorAccess: user=%d is not advisor=%d", userID, advisorID)
		return ErrAccessDenied
	}

	user, err := s.profileClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, profileservice.ErrUserNotFound) {
			s.logger.Warn("checkAdvisorAccess: user=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkAdvisorAccess: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkAdvisorAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdvisor() {
		s.logger.Warn("checkAdvisorAccess: user=%d is not an advisor", userID)
		return ErrNotAnAdvisor
	}

	return nil
}

// validateWindow валидирует параметры окна доступности
func validateWindow(req *models.UpsertWindowRequest) error {
	if req.AdvisorID <= 0 {
		return fmt.Errorf("%w: advisorID must be positive", ErrInvalidInput)
	}

	if req.DayOfWeek < domain.DayMonday || req.DayOfWeek > domain.DayFriday {
		return fmt.Errorf("%w: dayOfWeek must be between %d (Monday) and %d (Friday)",
			ErrInvalidDayOfWeek, domain.DayMonday, domain.DayFriday)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	return nil
}
