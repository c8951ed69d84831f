package entity

import (
	"time"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/id"
)

// Publishment marks an entity public or private. A private entity may carry
// an alternative display name shown to callers without read-private access.
type Publishment struct {
	Public          bool    `json:"public"`
	AlternativeName *string `json:"alternativeName,omitempty"`
}

// PublicPublishment returns a public publishment.
func PublicPublishment() Publishment {
	return Publishment{Public: true}
}

// PrivatePublishment returns a private publishment with an optional
// alternative display name.
func PrivatePublishment(alternativeName *string) Publishment {
	return Publishment{Public: false, AlternativeName: alternativeName}
}

// Todo is a recurring or one-off task definition.
type Todo struct {
	ID          id.ID       `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	Publishment Publishment `db:"-" json:"publishment"`
	Labels      []Label     `db:"-" json:"labels"`
	Schedules   []Schedule  `db:"-" json:"schedules"`
	StartedAt   *time.Time  `db:"started_at" json:"startedAt,omitempty"`
	DeadlinedAt *time.Time  `db:"deadlined_at" json:"deadlinedAt,omitempty"`
	EndedAt     *time.Time  `db:"ended_at" json:"endedAt,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
	DeletedAt   *time.Time  `db:"deleted_at" json:"-"`
}

// NewTodo creates a todo with a fresh id and timestamps.
func NewTodo(
	name, description string,
	publishment Publishment,
	labels []Label,
	schedules []Schedule,
	deadlinedAt *time.Time,
) Todo {
	now := time.Now().UTC()
	return Todo{
		ID:          id.New(),
		Name:        name,
		Description: description,
		Publishment: publishment,
		Labels:      labels,
		Schedules:   schedules,
		DeadlinedAt: deadlinedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsAlive reports whether the todo is neither deleted nor completed.
func (t Todo) IsAlive() bool {
	return t.DeletedAt == nil && t.EndedAt == nil
}

// ProgressStatus is a todo progress transition requested by an update.
type ProgressStatus string

const (
	ProgressOnProgress ProgressStatus = "on-progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// UpdateTodoCommand is a partial update. Nil fields are left untouched.
type UpdateTodoCommand struct {
	ID            id.ID
	Name          *string
	Description   *string
	Publishment   *Publishment
	DeadlinedAt   *time.Time
	ClearDeadline bool
	Status        *ProgressStatus
}

// IsEmpty reports whether the command would change nothing.
func (c UpdateTodoCommand) IsEmpty() bool {
	return c.Name == nil &&
		c.Description == nil &&
		c.Publishment == nil &&
		c.DeadlinedAt == nil &&
		!c.ClearDeadline &&
		c.Status == nil
}

// ScheduleKind discriminates recurrence patterns.
type ScheduleKind string

const (
	ScheduleOnce    ScheduleKind = "once"
	ScheduleDaily   ScheduleKind = "daily"
	ScheduleWeekly  ScheduleKind = "weekly"
	ScheduleMonthly ScheduleKind = "monthly"
)

// DayTime is a wall-clock time of day.
type DayTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// NewDayTime validates hour/minute/second ranges.
func NewDayTime(hour, minute, second int) (DayTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return DayTime{}, apperror.NewInvalidDateTime("time of day out of range").
			WithDetail("hour", hour).
			WithDetail("minute", minute).
			WithDetail("second", second)
	}
	return DayTime{Hour: hour, Minute: minute, Second: second}, nil
}

// Schedule describes when a todo recurs. The fields used depend on Kind:
// Once uses StartsAt/EndsAt, Daily uses StartTime/EndTime, Weekly adds
// Weekday, Monthly adds MonthDay.
type Schedule struct {
	Kind      ScheduleKind  `json:"kind"`
	StartsAt  *time.Time    `json:"startsAt,omitempty"`
	EndsAt    *time.Time    `json:"endsAt,omitempty"`
	StartTime *DayTime      `json:"startTime,omitempty"`
	EndTime   *DayTime      `json:"endTime,omitempty"`
	Weekday   *time.Weekday `json:"weekday,omitempty"`
	MonthDay  *int          `json:"monthDay,omitempty"`
}

// Validate checks that the fields required by the schedule kind are present
// and in range.
func (s Schedule) Validate() error {
	switch s.Kind {
	case ScheduleOnce:
		if s.StartsAt == nil || s.EndsAt == nil {
			return apperror.NewValidation("once schedule requires startsAt and endsAt")
		}
		if !s.EndsAt.After(*s.StartsAt) {
			return apperror.NewValidation("once schedule must end after it starts")
		}
	case ScheduleDaily:
		if s.StartTime == nil || s.EndTime == nil {
			return apperror.NewValidation("daily schedule requires startTime and endTime")
		}
	case ScheduleWeekly:
		if s.StartTime == nil || s.EndTime == nil || s.Weekday == nil {
			return apperror.NewValidation("weekly schedule requires weekday, startTime and endTime")
		}
		if *s.Weekday < time.Sunday || *s.Weekday > time.Saturday {
			return apperror.NewValidation("weekly schedule weekday out of range")
		}
	case ScheduleMonthly:
		if s.StartTime == nil || s.EndTime == nil || s.MonthDay == nil {
			return apperror.NewValidation("monthly schedule requires monthDay, startTime and endTime")
		}
		if *s.MonthDay < 1 || *s.MonthDay > 31 {
			return apperror.NewValidation("monthly schedule day out of range")
		}
	default:
		return apperror.NewValidation("unknown schedule kind").WithDetail("kind", string(s.Kind))
	}
	return nil
}
