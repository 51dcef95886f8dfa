package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	availabilityRepo "github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/availability"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability/models"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

type stubRepo struct {
	window  *domain.AvailabilityWindow
	windows []*domain.AvailabilityWindow
	err     error

	upserted     *domain.AvailabilityWindow
	setID        int64
	setAvailable bool
	deletedID    int64
}

func (s *stubRepo) Upsert(_ context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.upserted = window
	created := *window
	created.ID = 5
	return &created, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilityWindow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.window, nil
}

func (s *stubRepo) GetByAdvisor(_ context.Context, _ int64) ([]*domain.AvailabilityWindow, error) {
	return s.windows, s.err
}

func (s *stubRepo) SetAvailable(_ context.Context, id int64, isAvailable bool) error {
	s.setID = id
	s.setAvailable = isAvailable
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return nil
}

type stubProfile struct {
	user *profileservice.User
	err  error
}

func (s *stubProfile) GetUser(_ context.Context, _ int64) (*profileservice.User, error) {
	return s.user, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func advisorProfile() *stubProfile {
	return &stubProfile{user: &profileservice.User{ID: 1, Role: profileservice.RoleAdvisor}}
}

func upsertRequest() *models.UpsertWindowRequest {
	return &models.UpsertWindowRequest{
		AdvisorID:   1,
		DayOfWeek:   domain.DayMonday,
		StartTime:   types.TimeString("09:00"),
		EndTime:     types.TimeString("12:00"),
		IsAvailable: true,
	}
}

func TestUpsert_Success(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, advisorProfile(), nopLogger{})

	resp, err := svc.Upsert(context.Background(), 1, upsertRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "09:00", resp.StartTime)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(1), repo.upserted.AdvisorID)
}

func TestUpsert_OwnScheduleOnly(t *testing.T) {
	svc := NewService(&stubRepo{}, advisorProfile(), nopLogger{})

	_, err := svc.Upsert(context.Background(), 99, upsertRequest())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpsert_RequiresAdvisorRole(t *testing.T) {
	student := &stubProfile{user: &profileservice.User{ID: 1, Role: profileservice.RoleStudent}}
	svc := NewService(&stubRepo{}, student, nopLogger{})

	_, err := svc.Upsert(context.Background(), 1, upsertRequest())
	assert.ErrorIs(t, err, ErrNotAnAdvisor)
}

func TestUpsert_Validation(t *testing.T) {
	svc := NewService(&stubRepo{}, advisorProfile(), nopLogger{})

	// start >= end
	req := upsertRequest()
	req.StartTime = types.TimeString("12:00")
	req.EndTime = types.TimeString("09:00")
	_, err := svc.Upsert(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	req = upsertRequest()
	req.StartTime = types.TimeString("09:00")
	req.EndTime = types.TimeString("09:00")
	_, err = svc.Upsert(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// день недели за пределами Пн-Пт
	req = upsertRequest()
	req.DayOfWeek = 5
	_, err = svc.Upsert(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)

	req = upsertRequest()
	req.DayOfWeek = -1
	_, err = svc.Upsert(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)

	// некорректное время
	req = upsertRequest()
	req.StartTime = types.TimeString("9am")
	_, err = svc.Upsert(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggle_OwnershipCheck(t *testing.T) {
	repo := &stubRepo{window: &domain.AvailabilityWindow{
		ID:          5,
		AdvisorID:   1,
		DayOfWeek:   domain.DayMonday,
		StartTime:   types.TimeString("09:00"),
		EndTime:     types.TimeString("12:00"),
		IsAvailable: true,
	}}
	svc := NewService(repo, advisorProfile(), nopLogger{})

	resp, err := svc.Toggle(context.Background(), 5, &models.ToggleWindowRequest{UserID: 1, IsAvailable: false})
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, int64(5), repo.setID)
	assert.False(t, repo.setAvailable)

	_, err = svc.Toggle(context.Background(), 5, &models.ToggleWindowRequest{UserID: 99, IsAvailable: false})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestToggle_NotFound(t *testing.T) {
	repo := &stubRepo{err: availabilityRepo.ErrWindowNotFound}
	svc := NewService(repo, advisorProfile(), nopLogger{})

	_, err := svc.Toggle(context.Background(), 5, &models.ToggleWindowRequest{UserID: 1, IsAvailable: true})
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestDelete_OwnershipCheck(t *testing.T) {
	repo := &stubRepo{window: &domain.AvailabilityWindow{ID: 5, AdvisorID: 1}}
	svc := NewService(repo, advisorProfile(), nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 5, 1))
	assert.Equal(t, int64(5), repo.deletedID)

	err := svc.Delete(context.Background(), 5, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_ReturnsAllWindows(t *testing.T) {
	repo := &stubRepo{windows: []*domain.AvailabilityWindow{
		{ID: 1, AdvisorID: 1, DayOfWeek: domain.DayMonday, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		{ID: 2, AdvisorID: 1, DayOfWeek: domain.DayFriday, StartTime: "14:00", EndTime: "16:00", IsAvailable: false},
	}}
	svc := NewService(repo, advisorProfile(), nopLogger{})

	resp, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)

	// Отключённые окна тоже возвращаются
	assert.False(t, resp.Windows[1].IsAvailable)
}
