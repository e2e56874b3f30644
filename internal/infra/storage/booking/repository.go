package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CareBookingService/internal/domain"
	"github.com/m04kA/CareBookingService/pkg/dbmetrics"
	"github.com/m04kA/CareBookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"careseeker_id",
	"caregiver_id",
	"duration_type",
	"duration_value",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"working_days",
	"working_time_slots",
	"status",
	"address",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование вместе с задачами.
// Вызывать внутри транзакции: бронирование и задачи пишутся разными запросами.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"careseeker_id",
			"caregiver_id",
			"duration_type",
			"duration_value",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"working_days",
			"working_time_slots",
			"status",
			"address",
			"notes",
		).
		Values(
			booking.CareseekerID,
			booking.CaregiverID,
			booking.DurationType,
			booking.DurationValue,
			booking.StartDate,
			booking.EndDate,
			booking.StartTime,
			booking.EndTime,
			pq.Array(weekdaysToInts(booking.WorkingDays)),
			pq.Array(timeSlotsToStrings(booking.WorkingTimeSlots)),
			booking.Status,
			booking.Address,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	for i := range booking.Tasks {
		task := &booking.Tasks[i]
		task.BookingID = booking.ID
		task.Position = i

		if err := r.createTask(ctx, executor, task); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

func (r *Repository) createTask(ctx context.Context, executor DBExecutor, task *domain.Task) error {
	query, args, err := psqlbuilder.Insert("booking_tasks").
		Columns("booking_id", "position", "name", "description", "start_time").
		Values(task.BookingID, task.Position, task.Name, task.Description, task.StartTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createTask - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&task.ID); err != nil {
		return fmt.Errorf("%w: createTask - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с задачами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	tasks, err := r.getTasks(ctx, executor, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Tasks = tasks

	return booking, nil
}

func (r *Repository) getTasks(ctx context.Context, executor DBExecutor, bookingID int64) ([]domain.Task, error) {
	query, args, err := psqlbuilder.Select("id", "booking_id", "position", "name", "description", "start_time").
		From("booking_tasks").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getTasks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTasks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.BookingID, &task.Position, &task.Name, &task.Description, &task.StartTime); err != nil {
			return nil, fmt.Errorf("%w: getTasks - scan row: %v", ErrScanRow, err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTasks - rows error: %v", ErrScanRow, err)
	}

	return tasks, nil
}

// GetByCareseekerID получает историю бронирований заказчика
// Опционально фильтрует по статусу
func (r *Repository) GetByCareseekerID(ctx context.Context, careseekerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"careseeker_id": careseekerID}).
		OrderBy("created_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCareseekerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCareseekerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCaregiverWithFilter получает бронирования сиделки, период которых
// пересекается с [StartDate, EndDate] фильтра.
// Бессрочные бронирования (end_date IS NULL) считаются открытыми справа.
//
// Примеры использования:
//
//  1. Все активные бронирования сиделки:
//     filter := domain.CaregiverBookingsFilter{CaregiverID: 7}
//
//  2. Бронирования, затрагивающие неделю:
//     filter := domain.CaregiverBookingsFilter{CaregiverID: 7, StartDate: &monday, EndDate: &sunday}
//
//  3. Проверка пересечений при создании (внутри транзакции):
//     filter := domain.CaregiverBookingsFilter{CaregiverID: 7, StartDate: &from, EndDate: &to, ForUpdate: true}
func (r *Repository) GetByCaregiverWithFilter(ctx context.Context, filter domain.CaregiverBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"caregiver_id": filter.CaregiverID})

	// Пересечение периодов: start_date <= to AND (end_date IS NULL OR end_date >= from)
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.EndDate})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": *filter.StartDate},
		})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC, start_time ASC NULLS FIRST, id ASC")

	// Блокировка имеет смысл только внутри транзакции создания бронирования
	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCaregiverWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCaregiverWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var (
		workingDays      []int64
		workingTimeSlots []string
		address          sql.NullString
		createdAt        sql.NullTime
		updatedAt        sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.CareseekerID,
		&booking.CaregiverID,
		&booking.DurationType,
		&booking.DurationValue,
		&booking.StartDate,
		&booking.EndDate,
		&booking.StartTime,
		&booking.EndTime,
		pq.Array(&workingDays),
		pq.Array(&workingTimeSlots),
		&booking.Status,
		&address,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.WorkingDays = intsToWeekdays(workingDays)
	booking.WorkingTimeSlots, err = stringsToTimeSlots(workingTimeSlots)
	if err != nil {
		return nil, err
	}
	booking.Address = address.String
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func weekdaysToInts(days []time.Weekday) []int64 {
	result := make([]int64, len(days))
	for i, d := range days {
		result[i] = int64(d)
	}
	return result
}

func intsToWeekdays(values []int64) []time.Weekday {
	result := make([]time.Weekday, len(values))
	for i, v := range values {
		result[i] = time.Weekday(v)
	}
	return result
}

func timeSlotsToStrings(slots []domain.WorkingTimeSlot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.String()
	}
	return result
}

func stringsToTimeSlots(values []string) ([]domain.WorkingTimeSlot, error) {
	result := make([]domain.WorkingTimeSlot, 0, len(values))
	for _, v := range values {
		slot, err := domain.ParseWorkingTimeSlot(v)
		if err != nil {
			return nil, err
		}
		result = append(result, slot)
	}
	return result, nil
}
