package domain

// Caregiver профиль сиделки из CaregiverService.
// Расписание хранится в профиле, бронирования в нашей БД.
type Caregiver struct {
	ID       int64
	UserID   int64 // Пользователь, которому принадлежит профиль
	FullName string
	IsActive bool
	Schedule WeeklySchedule
}

// CanBeBooked возвращает true, если профиль активен и есть хотя бы один рабочий день
func (c *Caregiver) CanBeBooked() bool {
	if !c.IsActive {
		return false
	}
	for weekday := range c.Schedule {
		if c.Schedule.IsWorkingDay(weekday) {
			return true
		}
	}
	return false
}
