package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/events"
	"github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/appointment"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

var (
	monday = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	friday = time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
)

// fakeAppointmentRepo in-memory репозиторий, воспроизводящий поведение
// частичных уникальных индексов БД
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.appointments {
		if existing.StudentID == appt.StudentID &&
			existing.AppointmentDate.Equal(appt.AppointmentDate) &&
			existing.IsActive() {
			return nil, appointment.ErrDailyCapConflict
		}
	}

	for _, existing := range f.appointments {
		if existing.AdvisorID == appt.AdvisorID &&
			existing.AppointmentDate.Equal(appt.AppointmentDate) &&
			existing.StartTime.Equal(appt.StartTime) &&
			existing.BlocksSlot() {
			return nil, appointment.ErrSlotConflict
		}
	}

	f.nextID++
	created := *appt
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.appointments = append(f.appointments, &created)

	result := created
	return &result, nil
}

func (f *fakeAppointmentRepo) GetActiveByStudentAndDate(_ context.Context, studentID int64, date time.Time) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.StudentID == studentID && appt.AppointmentDate.Equal(date) && appt.IsActive() {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByAdvisorWithFilter(_ context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.AdvisorID != filter.AdvisorID {
			continue
		}
		if filter.StartDate != nil && appt.AppointmentDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && appt.AppointmentDate.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && !appt.IsActive() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) GetByAdvisorAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

type fakeProfileClient struct {
	users map[int64]*profileservice.User
}

func (f *fakeProfileClient) GetUser(_ context.Context, userID int64) (*profileservice.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, profileservice.ErrUserNotFound
	}
	return user, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции:
// конфликтную семантику эмулирует fakeAppointmentRepo
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type captureBus struct {
	mu     sync.Mutex
	events []events.AppointmentEvent
}

func (c *captureBus) Publish(event events.AppointmentEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
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

type fixture struct {
	uc       *UseCase
	apptRepo *fakeAppointmentRepo
	bus      *captureBus
}

func newFixture(windows []*domain.AvailabilityWindow) *fixture {
	apptRepo := &fakeAppointmentRepo{}
	bus := &captureBus{}

	profiles := &fakeProfileClient{users: map[int64]*profileservice.User{
		42: {ID: 42, Role: profileservice.RoleStudent},
		43: {ID: 43, Role: profileservice.RoleStudent},
		1:  {ID: 1, Role: profileservice.RoleAdvisor},
	}}

	uc := NewUseCase(apptRepo, &fakeAvailabilityRepo{windows: windows}, profiles, fakeTxManager{}, bus, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: friday}

	return &fixture{uc: uc, apptRepo: apptRepo, bus: bus}
}

func mondayMorning() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{
		{
			AdvisorID:   1,
			DayOfWeek:   domain.DayMonday,
			StartTime:   types.TimeString("09:00"),
			EndTime:     types.TimeString("12:00"),
			IsAvailable: true,
		},
	}
}

func bookingRequest(studentID int64, start string) *Request {
	return &Request{
		StudentID: studentID,
		AdvisorID: 1,
		Date:      monday,
		StartTime: types.TimeString(start),
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	fx := newFixture(mondayMorning())

	resp, err := fx.uc.Execute(context.Background(), bookingRequest(42, "09:30"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "09:30", resp.StartTime.String())
	assert.Equal(t, "10:00", resp.EndTime.String())
	assert.Equal(t, int64(42), resp.StudentID)

	require.Len(t, fx.bus.events, 1)
	assert.Equal(t, events.EventAppointmentCreated, fx.bus.events[0].Type)
}

func TestExecute_RejectsStartTimeOutsideSlotGrid(t *testing.T) {
	fx := newFixture(mondayMorning())

	// 09:45 не совпадает с 30-минутной сеткой от 09:00
	_, err := fx.uc.Execute(context.Background(), bookingRequest(42, "09:45"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// за пределами окна
	_, err = fx.uc.Execute(context.Background(), bookingRequest(42, "13:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// хвост окна короче слота: 11:30 - последний допустимый старт
	_, err = fx.uc.Execute(context.Background(), bookingRequest(42, "12:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_RejectsTakenSlot(t *testing.T) {
	fx := newFixture(mondayMorning())

	_, err := fx.uc.Execute(context.Background(), bookingRequest(42, "09:00"))
	require.NoError(t, err)

	_, err = fx.uc.Execute(context.Background(), bookingRequest(43, "09:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_EnforcesDailyCap(t *testing.T) {
	fx := newFixture(mondayMorning())

	_, err := fx.uc.Execute(context.Background(), bookingRequest(42, "09:00"))
	require.NoError(t, err)

	_, err = fx.uc.Execute(context.Background(), bookingRequest(42, "10:00"))
	assert.ErrorIs(t, err, ErrDailyCapExceeded)
}

func TestExecute_SlotFreedByStudentCancellation(t *testing.T) {
	fx := newFixture(mondayMorning())
	actor := domain.ActorStudent
	fx.apptRepo.appointments = append(fx.apptRepo.appointments, &domain.Appointment{
		ID:              1,
		StudentID:       43,
		AdvisorID:       1,
		AppointmentDate: monday,
		StartTime:       types.TimeString("09:00"),
		Status:          domain.StatusCancelled,
		CancelledBy:     &actor,
	})

	_, err := fx.uc.Execute(context.Background(), bookingRequest(42, "09:00"))
	assert.NoError(t, err)
}

func TestExecute_SlotBlockedByAdvisorCancellation(t *testing.T) {
	fx := newFixture(mondayMorning())
	actor := domain.ActorAdvisor
	fx.apptRepo.appointments = append(fx.apptRepo.appointments, &domain.Appointment{
		ID:              1,
		StudentID:       43,
		AdvisorID:       1,
		AppointmentDate: monday,
		StartTime:       types.TimeString("09:00"),
		Status:          domain.StatusCancelled,
		CancelledBy:     &actor,
	})

	_, err := fx.uc.Execute(context.Background(), bookingRequest(42, "09:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CancelledDoesNotCountTowardsDailyCap(t *testing.T) {
	fx := newFixture(mondayMorning())
	actor := domain.ActorStudent
	fx.apptRepo.appointments = append(fx.apptRepo.appointments, &domain.Appointment{
		ID:              1,
		StudentID:       42,
		AdvisorID:       1,
		AppointmentDate: monday,
		StartTime:       types.TimeString("09:00"),
		Status:          domain.StatusCancelled,
		CancelledBy:     &actor,
	})

	_, err := fx.uc.Execute(context.Background(), bookingRequest(42, "10:00"))
	assert.NoError(t, err)
}

func TestExecute_DateValidation(t *testing.T) {
	fx := newFixture(mondayMorning())

	pastReq := bookingRequest(42, "09:00")
	pastReq.Date = friday.AddDate(0, 0, -7)
	_, err := fx.uc.Execute(context.Background(), pastReq)
	assert.ErrorIs(t, err, ErrInvalidDate)

	weekendReq := bookingRequest(42, "09:00")
	weekendReq.Date = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC) // суббота
	_, err = fx.uc.Execute(context.Background(), weekendReq)
	assert.ErrorIs(t, err, ErrInvalidDate)

	farReq := bookingRequest(42, "09:00")
	farReq.Date = friday.AddDate(0, 0, domain.MaxBookingHorizonDays+5)
	_, err = fx.uc.Execute(context.Background(), farReq)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_RoleChecks(t *testing.T) {
	fx := newFixture(mondayMorning())

	// Неизвестный студент
	_, err := fx.uc.Execute(context.Background(), bookingRequest(99, "09:00"))
	assert.ErrorIs(t, err, ErrStudentNotFound)

	// Советник в роли студента
	_, err = fx.uc.Execute(context.Background(), bookingRequest(1, "09:00"))
	assert.ErrorIs(t, err, ErrNotAStudent)

	// Студент в роли советника
	req := bookingRequest(42, "09:00")
	req.AdvisorID = 43
	_, err = fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotAnAdvisor)
}

func TestExecute_ConcurrentBookingOfSameSlot(t *testing.T) {
	fx := newFixture(mondayMorning())

	var wg sync.WaitGroup
	errs := make([]error, 2)

	// Оба студента бронируют один и тот же слот: ровно один успевает,
	// второй получает конфликт от уникального индекса
	for i, studentID := range []int64{42, 43} {
		wg.Add(1)
		go func(i int, studentID int64) {
			defer wg.Done()
			_, errs[i] = fx.uc.Execute(context.Background(), bookingRequest(studentID, "09:00"))
		}(i, studentID)
	}
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrDailyCapExceeded):
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, fx.apptRepo.appointments, 1)
}
