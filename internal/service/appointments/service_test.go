package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/events"
	appointmentRepo "github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/appointment"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
	"github.com/m04kA/UCA-AdvisoryService/internal/service/appointments/models"
	"github.com/m04kA/UCA-AdvisoryService/pkg/ptr"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

type stubRepo struct {
	appt *domain.Appointment
	list []*domain.Appointment
	err  error

	cancelledID    int64
	cancelActor    domain.CancelActor
	cancelReason   string
	updatedID      int64
	updatedStatus  domain.AppointmentStatus
	gotFilter      domain.AdvisorAppointmentsFilter
	gotStatusParam *domain.AppointmentStatus
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.appt, nil
}

func (s *stubRepo) GetByStudentID(_ context.Context, _ int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	s.gotStatusParam = status
	return s.list, s.err
}

func (s *stubRepo) GetByAdvisorWithFilter(_ context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error) {
	s.gotFilter = filter
	return s.list, s.err
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	s.updatedID = id
	s.updatedStatus = status
	return nil
}

func (s *stubRepo) Cancel(_ context.Context, id int64, actor domain.CancelActor, reason string) error {
	s.cancelledID = id
	s.cancelActor = actor
	s.cancelReason = reason
	return nil
}

type stubProfile struct {
	user *profileservice.User
	err  error
}

func (s *stubProfile) GetUserWithGracefulDegradation(_ context.Context, _ int64) (*profileservice.User, error) {
	return s.user, s.err
}

type captureBus struct {
	events []events.AppointmentEvent
}

func (c *captureBus) Publish(event events.AppointmentEvent) {
	c.events = append(c.events, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              10,
		StudentID:       42,
		AdvisorID:       1,
		AppointmentDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("09:00"),
		EndTime:         types.TimeString("09:30"),
		Status:          status,
	}
}

func newService(repo *stubRepo, bus *captureBus) *Service {
	advisor := &profileservice.User{ID: 1, Role: profileservice.RoleAdvisor}
	return NewService(repo, &stubProfile{user: advisor}, bus, nopLogger{})
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusPending)}
	svc := newService(repo, &captureBus{})

	// Участники видят запись
	_, err := svc.GetByID(context.Background(), 10, 42)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 10, 1)
	assert.NoError(t, err)

	// Посторонний - нет
	_, err = svc.GetByID(context.Background(), 10, 777)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &stubRepo{err: appointmentRepo.ErrAppointmentNotFound}
	svc := newService(repo, &captureBus{})

	_, err := svc.GetByID(context.Background(), 10, 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_StudentActor(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusPending)}
	bus := &captureBus{}
	svc := newService(repo, bus)

	err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{
		UserID:             42,
		CancellationReason: "не смогу прийти",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ActorStudent, repo.cancelActor)
	assert.Equal(t, "не смогу прийти", repo.cancelReason)

	require.Len(t, bus.events, 1)
	assert.Equal(t, events.EventAppointmentCancelled, bus.events[0].Type)
	require.NotNil(t, bus.events[0].PreviousStatus)
	assert.Equal(t, domain.StatusPending, *bus.events[0].PreviousStatus)
}

func TestCancel_AdvisorActor(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusConfirmed)}
	svc := newService(repo, &captureBus{})

	err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{
		UserID:             1,
		CancellationReason: "болею",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ActorAdvisor, repo.cancelActor)
}

func TestCancel_Validation(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusPending)}
	svc := newService(repo, &captureBus{})

	// Причина обязательна
	err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{UserID: 42, CancellationReason: "  "})
	assert.ErrorIs(t, err, ErrReasonRequired)

	// Посторонний пользователь
	err = svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{UserID: 777, CancellationReason: "x"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		repo := &stubRepo{appt: testAppointment(status)}
		svc := newService(repo, &captureBus{})

		err := svc.Cancel(context.Background(), 10, &models.CancelAppointmentRequest{UserID: 42, CancellationReason: "x"})
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
	}
}

func TestUpdateStatus_AdvisorConfirms(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusPending)}
	bus := &captureBus{}
	svc := newService(repo, bus)

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: 1, Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
	require.Len(t, bus.events, 1)
	assert.Equal(t, events.EventAppointmentStatusChanged, bus.events[0].Type)
}

func TestUpdateStatus_OnlyAdvisor(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusPending)}
	svc := newService(repo, &captureBus{})

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: 42, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_RejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		from domain.AppointmentStatus
		to   string
	}{
		{domain.StatusPending, "completed"},
		{domain.StatusCancelled, "confirmed"},
		{domain.StatusCompleted, "confirmed"},
	}

	for _, tt := range tests {
		repo := &stubRepo{appt: testAppointment(tt.from)}
		svc := newService(repo, &captureBus{})

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: 1, Status: tt.to})
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
	}
}

func TestUpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusPending)}
	svc := newService(repo, &captureBus{})

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: 1, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &stubRepo{appt: testAppointment(domain.StatusPending)}
	svc := newService(repo, &captureBus{})

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: 1, Status: "no_show"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetStudentAppointments_StatusFilter(t *testing.T) {
	repo := &stubRepo{list: []*domain.Appointment{testAppointment(domain.StatusPending)}}
	svc := newService(repo, &captureBus{})

	resp, err := svc.GetStudentAppointments(context.Background(), &models.GetStudentAppointmentsRequest{
		StudentID: 42,
		Status:    ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.gotStatusParam)
	assert.Equal(t, domain.StatusPending, *repo.gotStatusParam)

	_, err = svc.GetStudentAppointments(context.Background(), &models.GetStudentAppointmentsRequest{
		StudentID: 42,
		Status:    ptr.Ptr("no_show"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAdvisorAppointments_OwnScheduleOnly(t *testing.T) {
	repo := &stubRepo{list: []*domain.Appointment{testAppointment(domain.StatusConfirmed)}}
	svc := newService(repo, &captureBus{})

	resp, err := svc.GetAdvisorAppointments(context.Background(), &models.GetAdvisorAppointmentsRequest{
		UserID:    1,
		AdvisorID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetAdvisorAppointments(context.Background(), &models.GetAdvisorAppointmentsRequest{
		UserID:    42,
		AdvisorID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetAdvisorAppointments_DegradedProfileServiceSkipsRoleCheck(t *testing.T) {
	repo := &stubRepo{list: []*domain.Appointment{}}
	svc := NewService(repo, &stubProfile{err: profileservice.ErrServiceDegraded}, &captureBus{}, nopLogger{})

	_, err := svc.GetAdvisorAppointments(context.Background(), &models.GetAdvisorAppointmentsRequest{
		UserID:    1,
		AdvisorID: 1,
	})
	assert.NoError(t, err)
}
