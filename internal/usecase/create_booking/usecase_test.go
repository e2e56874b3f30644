package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CareBookingService/internal/domain"
	caregiverClient "github.com/m04kA/CareBookingService/internal/integrations/caregiverservice"
	"github.com/m04kA/CareBookingService/pkg/logger"
	"github.com/m04kA/CareBookingService/pkg/ptr"
	"github.com/m04kA/CareBookingService/pkg/types"
)

type fakeBookingRepo struct {
	existing   []*domain.Booking
	getErr     error
	createErr  error
	created    *domain.Booking
	lastFilter domain.CaregiverBookingsFilter
}

func (f *fakeBookingRepo) GetByCaregiverWithFilter(_ context.Context, filter domain.CaregiverBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.existing, f.getErr
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 42
	for i := range booking.Tasks {
		booking.Tasks[i].BookingID = booking.ID
	}
	f.created = booking
	return booking, nil
}

type fakeCaregiverClient struct {
	caregiver *domain.Caregiver
	err       error
}

func (f *fakeCaregiverClient) GetCaregiver(_ context.Context, _ int64) (*domain.Caregiver, error) {
	return f.caregiver, f.err
}

// inlineTx выполняет функцию без реальной транзакции
type inlineTx struct{ calls int }

func (t *inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type recordingMetrics struct{ created []string }

func (m *recordingMetrics) IncBookingCreated(durationType string) {
	m.created = append(m.created, durationType)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// 2026-03-02 понедельник
var (
	monday    = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday   = monday.AddDate(0, 0, 1)
	wednesday = monday.AddDate(0, 0, 2)
)

func everyDay(start, end types.TimeString) domain.WeeklySchedule {
	schedule := make(domain.WeeklySchedule)
	for d := time.Sunday; d <= time.Saturday; d++ {
		schedule[d] = []domain.WorkingWindow{{Start: start, End: end}}
	}
	return schedule
}

type fixture struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	caregiver *fakeCaregiverClient
	tx        *inlineTx
	metrics   *recordingMetrics
}

func newFixture(schedule domain.WeeklySchedule) *fixture {
	repo := &fakeBookingRepo{}
	client := &fakeCaregiverClient{caregiver: &domain.Caregiver{ID: 7, UserID: 70, IsActive: true, Schedule: schedule}}
	tx := &inlineTx{}
	m := &recordingMetrics{}

	uc := NewUseCase(repo, client, tx, m, Options{Location: time.UTC}, logger.NewNop())
	uc.timeProvider = fixedTime{now: monday.Add(6 * time.Hour)}

	return &fixture{uc: uc, repo: repo, caregiver: client, tx: tx, metrics: m}
}

func hourlyRequest(day time.Time, start, end types.TimeString) *Request {
	return &Request{
		CareseekerID:     5,
		CaregiverID:      7,
		DurationType:     "hourly",
		DurationValue:    ptr.Ptr(2),
		StartDate:        day,
		EndDate:          ptr.Ptr(day),
		StartTime:        ptr.Ptr(start),
		EndTime:          ptr.Ptr(end),
		WorkingDays:      []time.Weekday{day.Weekday()},
		WorkingTimeSlots: []string{"06:00-12:00"},
		Address:          "12 Nguyễn Huệ, Quận 1, TP. Hồ Chí Minh",
	}
}

func dailyRequest(durationType string, days int, start time.Time, weekdays []time.Weekday, slots ...string) *Request {
	return &Request{
		CareseekerID:     5,
		CaregiverID:      7,
		DurationType:     durationType,
		DurationValue:    ptr.Ptr(days),
		StartDate:        start,
		EndDate:          ptr.Ptr(start.AddDate(0, 0, days)),
		WorkingDays:      weekdays,
		WorkingTimeSlots: slots,
		Address:          "12 Nguyễn Huệ, Quận 1, TP. Hồ Chí Minh",
	}
}

func existingShort(start, end time.Time, weekdays []time.Weekday, slot domain.WorkingTimeSlot) *domain.Booking {
	return &domain.Booking{
		ID:               100,
		CaregiverID:      7,
		DurationType:     domain.DurationShort,
		DurationValue:    ptr.Ptr(int(end.Sub(start).Hours() / 24)),
		StartDate:        start,
		EndDate:          ptr.Ptr(end),
		WorkingDays:      weekdays,
		WorkingTimeSlots: []domain.WorkingTimeSlot{slot},
		Status:           domain.StatusConfirmed,
	}
}

func TestExecute_CreatesHourlyBooking(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))
	req := hourlyRequest(monday, "09:00", "11:00")
	req.Tasks = []TaskInput{{Name: "Đo huyết áp", Description: "Đo trước bữa sáng", StartTime: ptr.Ptr(types.TimeString("09:15"))}}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	booking := resp.Booking
	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.Equal(t, domain.DurationHourly, booking.DurationType)
	assert.Equal(t, 2, ptr.Value(booking.DurationValue))
	assert.Equal(t, types.TimeString("09:00"), ptr.Value(booking.StartTime))
	require.Len(t, booking.Tasks, 1)
	assert.Equal(t, int64(42), booking.Tasks[0].BookingID)

	// Ищем пересечения с запасом в день с обеих сторон и под блокировкой
	assert.True(t, f.repo.lastFilter.ForUpdate)
	assert.Equal(t, monday.AddDate(0, 0, -1), *f.repo.lastFilter.StartDate)
	assert.Equal(t, tuesday, *f.repo.lastFilter.EndDate)
	assert.False(t, f.repo.lastFilter.IncludeInactive)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"hourly"}, f.metrics.created)
}

func TestExecute_RejectsOverlappingHourlyBooking(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))
	f.repo.existing = []*domain.Booking{{
		ID:           100,
		CaregiverID:  7,
		DurationType: domain.DurationHourly,
		StartDate:    monday,
		EndDate:      ptr.Ptr(monday),
		StartTime:    ptr.Ptr(types.TimeString("10:00")),
		EndTime:      ptr.Ptr(types.TimeString("12:00")),
		Status:       domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), hourlyRequest(monday, "09:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.repo.created)
	assert.Empty(t, f.metrics.created)
}

func TestExecute_AdjacentHourlyBookingIsAllowed(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))
	f.repo.existing = []*domain.Booking{{
		ID:           100,
		CaregiverID:  7,
		DurationType: domain.DurationHourly,
		StartDate:    monday,
		EndDate:      ptr.Ptr(monday),
		StartTime:    ptr.Ptr(types.TimeString("11:00")),
		EndTime:      ptr.Ptr(types.TimeString("13:00")),
		Status:       domain.StatusPending,
	}}

	_, err := f.uc.Execute(context.Background(), hourlyRequest(monday, "09:00", "11:00"))
	require.NoError(t, err)
	assert.NotNil(t, f.repo.created)
}

func TestExecute_HourlyOutsideWorkingHours(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))

	_, err := f.uc.Execute(context.Background(), hourlyRequest(monday, "07:00", "09:00"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecute_DailyBookingConflictsOnSharedWorkingDay(t *testing.T) {
	f := newFixture(everyDay("00:00", "24:00"))
	morning := domain.WorkingTimeSlot{Start: "06:00", End: "12:00"}
	f.repo.existing = []*domain.Booking{
		existingShort(monday, monday.AddDate(0, 0, 4), []time.Weekday{time.Wednesday}, morning),
	}

	_, err := f.uc.Execute(context.Background(),
		dailyRequest("short", 3, tuesday, []time.Weekday{time.Wednesday}, "06:00-12:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Другое окно в тот же день не пересекается
	_, err = f.uc.Execute(context.Background(),
		dailyRequest("short", 3, tuesday, []time.Weekday{time.Wednesday}, "12:00-18:00"))
	require.NoError(t, err)
}

func TestExecute_OvernightSlotBlocksNextMorning(t *testing.T) {
	f := newFixture(everyDay("00:00", "24:00"))
	night := domain.WorkingTimeSlot{Start: "22:00", End: "06:00"}
	// Вторник 22:00 - среда 06:00
	f.repo.existing = []*domain.Booking{
		existingShort(monday, tuesday, []time.Weekday{time.Tuesday}, night),
	}

	_, err := f.uc.Execute(context.Background(), hourlyRequest(wednesday, "02:00", "04:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(context.Background(), hourlyRequest(wednesday, "06:00", "08:00"))
	require.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotConflict(t *testing.T) {
	f := newFixture(everyDay("00:00", "24:00"))
	morning := domain.WorkingTimeSlot{Start: "06:00", End: "12:00"}
	cancelled := existingShort(monday, monday.AddDate(0, 0, 4), []time.Weekday{time.Wednesday}, morning)
	cancelled.Status = domain.StatusCancelledByCaregiver
	f.repo.existing = []*domain.Booking{cancelled}

	_, err := f.uc.Execute(context.Background(),
		dailyRequest("short", 3, tuesday, []time.Weekday{time.Wednesday}, "06:00-12:00"))
	require.NoError(t, err)
}

func TestExecute_UnlimitedBookingIsOpenEnded(t *testing.T) {
	f := newFixture(everyDay("00:00", "24:00"))
	req := &Request{
		CareseekerID:     5,
		CaregiverID:      7,
		DurationType:     "unlimited",
		StartDate:        tuesday,
		WorkingDays:      []time.Weekday{time.Monday, time.Friday},
		WorkingTimeSlots: []string{"18:00–22:00"},
		Address:          "Hà Nội",
	}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Booking.EndDate)
	assert.Nil(t, resp.Booking.DurationValue)
	assert.Equal(t, tuesday.AddDate(0, 0, domain.MaxHorizonDays+1), *f.repo.lastFilter.EndDate)
	assert.Equal(t, []string{"unlimited"}, f.metrics.created)
}

func TestExecute_InvalidFormWrapsValidationError(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))
	req := hourlyRequest(monday, "09:00", "11:00")
	req.WorkingDays = nil

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "workingDays", vErr.Field)
	assert.Equal(t, domain.MsgChooseWorkingDays, vErr.Message)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture, req *Request)
		wantErr error
	}{
		{
			name:    "careseeker id missing",
			setup:   func(_ *fixture, req *Request) { req.CareseekerID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "start in the past",
			setup:   func(_ *fixture, req *Request) { *req.StartTime = "05:00"; *req.EndTime = "07:00" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "caregiver not found",
			setup:   func(f *fixture, _ *Request) { f.caregiver.err = caregiverClient.ErrCaregiverNotFound },
			wantErr: ErrCaregiverNotFound,
		},
		{
			name: "caregiver service down",
			setup: func(f *fixture, _ *Request) {
				f.caregiver.err = fmt.Errorf("%w: timeout", caregiverClient.ErrServiceUnavailable)
			},
			wantErr: ErrCaregiverUnavailable,
		},
		{
			name:    "caregiver inactive",
			setup:   func(f *fixture, _ *Request) { f.caregiver.caregiver.IsActive = false },
			wantErr: ErrCaregiverNotBookable,
		},
		{
			name:    "self booking",
			setup:   func(_ *fixture, req *Request) { req.CareseekerID = 70 },
			wantErr: ErrSelfBooking,
		},
		{
			name:    "repository failure",
			setup:   func(f *fixture, _ *Request) { f.repo.getErr = errors.New("connection reset") },
			wantErr: ErrInternal,
		},
		{
			name:    "insert failure",
			setup:   func(f *fixture, _ *Request) { f.repo.createErr = errors.New("deadlock") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(everyDay("08:00", "17:00"))
			req := hourlyRequest(monday, "09:00", "11:00")
			tt.setup(f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.metrics.created)
		})
	}
}

func TestValidate_FirstBlockingGap(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(req *Request)
		wantField string
		wantMsg   string
	}{
		{
			name:      "working days first",
			mutate:    func(req *Request) { req.WorkingDays = nil; req.WorkingTimeSlots = nil; req.DurationType = "" },
			wantField: "workingDays",
			wantMsg:   domain.MsgChooseWorkingDays,
		},
		{
			name:      "then time slots",
			mutate:    func(req *Request) { req.WorkingTimeSlots = nil; req.DurationType = "" },
			wantField: "workingTimeSlots",
			wantMsg:   domain.MsgChooseTimeSlots,
		},
		{
			name:      "then duration",
			mutate:    func(req *Request) { req.DurationType = "" },
			wantField: "duration",
			wantMsg:   domain.MsgChooseDuration,
		},
		{
			name:      "short over ten days",
			mutate:    func(req *Request) { req.DurationValue = ptr.Ptr(11) },
			wantField: "durationValue",
			wantMsg:   "Duration value must not exceed 10 days",
		},
		{
			name:      "short period longer than value",
			mutate:    func(req *Request) { req.EndDate = ptr.Ptr(tuesday.AddDate(1, 0, 0)) },
			wantField: "endDate",
			wantMsg:   "End date must be 3 days after start date",
		},
		{
			name: "long period without bound",
			mutate: func(req *Request) {
				req.DurationType = "long"
				req.DurationValue = ptr.Ptr(3000000)
				req.EndDate = ptr.Ptr(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
			},
			wantField: "durationValue",
			wantMsg:   "Long booking must not exceed 365 days",
		},
		{
			name:      "unknown time slot",
			mutate:    func(req *Request) { req.WorkingTimeSlots = []string{"morning"} },
			wantField: "workingTimeSlots",
			wantMsg:   `Unknown time slot "morning"`,
		},
		{
			name: "task outside selected slots",
			mutate: func(req *Request) {
				req.Tasks = []TaskInput{{Name: "Cho ăn", Description: "Bữa trưa", StartTime: ptr.Ptr(types.TimeString("13:00"))}}
			},
			wantField: "tasks[0].startTime",
			wantMsg:   "Please choose a start time from the available list",
		},
		{
			name:      "missing address",
			mutate:    func(req *Request) { req.Address = "  " },
			wantField: "address",
			wantMsg:   "Please enter the care address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(everyDay("08:00", "17:00"))
			req := dailyRequest("short", 3, tuesday, []time.Weekday{time.Wednesday}, "06:00-12:00")
			tt.mutate(req)

			result := f.uc.Validate(req)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.wantField, result.Field)
			assert.Equal(t, tt.wantMsg, result.Message)
		})
	}
}

func TestValidate_UnlimitedRejectsEndDate(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))
	req := dailyRequest("unlimited", 3, tuesday, []time.Weekday{time.Wednesday}, "06:00-12:00")
	req.DurationValue = nil

	result := f.uc.Validate(req)
	assert.False(t, result.Valid)
	assert.Equal(t, "endDate", result.Field)
}

func TestValidate_ReturnsAllowedTaskStartTimes(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))
	req := dailyRequest("long", 30, tuesday, []time.Weekday{time.Wednesday, time.Wednesday}, "06:00-12:00")

	result := f.uc.Validate(req)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)
	require.Len(t, result.AllowedTaskStartTimes, 24)
	assert.Equal(t, types.TimeString("06:00"), result.AllowedTaskStartTimes[0])
	assert.Equal(t, types.TimeString("11:45"), result.AllowedTaskStartTimes[23])
}

func TestExecute_HourlyTimesMustMatchValue(t *testing.T) {
	f := newFixture(everyDay("08:00", "17:00"))
	req := hourlyRequest(monday, "09:00", "15:00")

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "endTime", vErr.Field)
	assert.Equal(t, "End time must be 2 hours after start time", vErr.Message)
	assert.Equal(t, 0, f.tx.calls)
}

func TestExecute_LongUnlimitedBookingStillBlocks(t *testing.T) {
	f := newFixture(everyDay("00:00", "24:00"))
	start := monday.AddDate(0, 0, -200)
	f.repo.existing = []*domain.Booking{{
		ID:               100,
		CaregiverID:      7,
		DurationType:     domain.DurationUnlimited,
		StartDate:        start,
		WorkingDays:      []time.Weekday{time.Wednesday},
		WorkingTimeSlots: []domain.WorkingTimeSlot{{Start: "06:00", End: "12:00"}},
		Status:           domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(),
		dailyRequest("short", 3, tuesday, []time.Weekday{time.Wednesday}, "06:00-12:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestFindConflict_ScansOnlySharedDates(t *testing.T) {
	morning := domain.WorkingTimeSlot{Start: "06:00", End: "12:00"}
	candidate := &domain.Booking{
		DurationType:     domain.DurationLong,
		StartDate:        tuesday,
		EndDate:          ptr.Ptr(tuesday.AddDate(0, 0, domain.MaxLongDays)),
		WorkingDays:      []time.Weekday{time.Wednesday},
		WorkingTimeSlots: []domain.WorkingTimeSlot{morning},
		Status:           domain.StatusPending,
	}

	// Заканчивается до начала кандидата
	before := existingShort(monday.AddDate(0, 0, -20), monday.AddDate(0, 0, -10), []time.Weekday{time.Wednesday}, morning)
	assert.Nil(t, findConflict(candidate, []*domain.Booking{before}))

	// Пересекается в конце периода кандидата
	late := candidate.EndDate.AddDate(0, 0, -7)
	after := existingShort(late, late.AddDate(0, 0, 10), []time.Weekday{time.Wednesday}, morning)
	assert.Equal(t, after, findConflict(candidate, []*domain.Booking{before, after}))
}
