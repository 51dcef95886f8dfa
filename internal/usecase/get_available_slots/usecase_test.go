package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
)

type stubAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
	err     error
}

func (s *stubAvailabilityRepo) GetByAdvisorAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityWindow, error) {
	return s.windows, s.err
}

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	gotFilter    domain.AdvisorAppointmentsFilter
}

func (s *stubAppointmentRepo) GetByAdvisorWithFilter(_ context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error) {
	s.gotFilter = filter
	return s.appointments, s.err
}

type stubProfileClient struct {
	user *profileservice.User
	err  error
}

func (s *stubProfileClient) GetUserWithGracefulDegradation(_ context.Context, _ int64) (*profileservice.User, error) {
	return s.user, s.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	profileClient ProfileServiceClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(availabilityRepo, appointmentRepo, profileClient, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func advisorUser(id int64) *profileservice.User {
	return &profileservice.User{ID: id, Role: profileservice.RoleAdvisor}
}

func TestExecute_HappyPath(t *testing.T) {
	availRepo := &stubAvailabilityRepo{windows: []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "10:30", true),
	}}
	apptRepo := &stubAppointmentRepo{appointments: []*domain.Appointment{
		{StudentID: 42, StartTime: "09:30", Status: domain.StatusPending},
	}}

	uc := newTestUseCase(availRepo, apptRepo, &stubProfileClient{user: advisorUser(1)}, monday)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, RequestingUserID: 42, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.False(t, resp.Slots[0].IsBooked)
	assert.True(t, resp.Slots[1].IsBooked)
	assert.True(t, resp.Slots[1].IsOwnBooking)
	assert.False(t, resp.Slots[2].IsBooked)

	// Запрашиваются все записи на дату, включая неактивные
	assert.True(t, apptRepo.gotFilter.IncludeInactive)
	require.NotNil(t, apptRepo.gotFilter.StartDate)
	assert.Equal(t, monday, *apptRepo.gotFilter.StartDate)
}

func TestExecute_WeekendReturnsEmptySlots(t *testing.T) {
	availRepo := &stubAvailabilityRepo{}
	apptRepo := &stubAppointmentRepo{}

	// Запрос на субботу в пределах горизонта
	uc := newTestUseCase(availRepo, apptRepo, &stubProfileClient{user: advisorUser(1)}, monday)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, Date: saturday.AddDate(0, 0, 7)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{}, &stubAppointmentRepo{}, &stubProfileClient{user: advisorUser(1)}, monday)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, Date: monday.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondHorizon(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{}, &stubAppointmentRepo{}, &stubProfileClient{user: advisorUser(1)}, monday)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, Date: monday.AddDate(0, 0, domain.MaxBookingHorizonDays+1)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_HorizonBoundaryIsAllowed(t *testing.T) {
	availRepo := &stubAvailabilityRepo{}
	apptRepo := &stubAppointmentRepo{}
	uc := newTestUseCase(availRepo, apptRepo, &stubProfileClient{user: advisorUser(1)}, monday)

	// Ровно 30 дней вперёд - последняя доступная дата
	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, Date: monday.AddDate(0, 0, domain.MaxBookingHorizonDays)})
	require.NoError(t, err)
}

func TestExecute_AdvisorNotFound(t *testing.T) {
	uc := newTestUseCase(
		&stubAvailabilityRepo{}, &stubAppointmentRepo{},
		&stubProfileClient{err: profileservice.ErrUserNotFound},
		monday,
	)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrAdvisorNotFound)
}

func TestExecute_TargetUserIsNotAdvisor(t *testing.T) {
	student := &profileservice.User{ID: 5, Role: profileservice.RoleStudent}
	uc := newTestUseCase(&stubAvailabilityRepo{}, &stubAppointmentRepo{}, &stubProfileClient{user: student}, monday)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 5, Date: monday})
	assert.ErrorIs(t, err, ErrNotAnAdvisor)
}

func TestExecute_ProfileServiceDegradedStillServesSlots(t *testing.T) {
	availRepo := &stubAvailabilityRepo{windows: []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "10:00", true),
	}}
	uc := newTestUseCase(
		availRepo, &stubAppointmentRepo{},
		&stubProfileClient{err: profileservice.ErrServiceDegraded},
		monday,
	)

	resp, err := uc.Execute(context.Background(), &Request{AdvisorID: 1, Date: monday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubAvailabilityRepo{}, &stubAppointmentRepo{}, &stubProfileClient{user: advisorUser(1)}, monday)

	_, err := uc.Execute(context.Background(), &Request{AdvisorID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{AdvisorID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
