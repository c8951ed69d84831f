package dto

import (
	"time"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

// DayTimeRequest is a wall-clock time of day.
type DayTimeRequest struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// ScheduleRequest describes one recurrence entry of a todo.
type ScheduleRequest struct {
	Kind      string          `json:"kind" binding:"required"`
	StartsAt  *time.Time      `json:"startsAt"`
	EndsAt    *time.Time      `json:"endsAt"`
	StartTime *DayTimeRequest `json:"startTime"`
	EndTime   *DayTimeRequest `json:"endTime"`
	Weekday   *int            `json:"weekday"`
	MonthDay  *int            `json:"monthDay"`
}

// ToEntity converts and validates the schedule.
func (r ScheduleRequest) ToEntity() (entity.Schedule, error) {
	s := entity.Schedule{
		Kind:     entity.ScheduleKind(r.Kind),
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		MonthDay: r.MonthDay,
	}
	if r.StartTime != nil {
		dt, err := entity.NewDayTime(r.StartTime.Hour, r.StartTime.Minute, r.StartTime.Second)
		if err != nil {
			return entity.Schedule{}, err
		}
		s.StartTime = &dt
	}
	if r.EndTime != nil {
		dt, err := entity.NewDayTime(r.EndTime.Hour, r.EndTime.Minute, r.EndTime.Second)
		if err != nil {
			return entity.Schedule{}, err
		}
		s.EndTime = &dt
	}
	if r.Weekday != nil {
		wd := time.Weekday(*r.Weekday)
		s.Weekday = &wd
	}
	if err := s.Validate(); err != nil {
		return entity.Schedule{}, err
	}
	return s, nil
}

// CreateTodoRequest for creating todos.
type CreateTodoRequest struct {
	Name            string            `json:"name" binding:"required"`
	Description     string            `json:"description"`
	IsPublic        bool              `json:"isPublic"`
	AlternativeName *string           `json:"alternativeName"`
	LabelIDs        []string          `json:"labelIds"`
	Schedules       []ScheduleRequest `json:"schedules"`
	DeadlinedAt     *time.Time        `json:"deadlinedAt"`
}

// Publishment builds the publishment value. The alternative name only makes
// sense on a private todo and is dropped otherwise.
func (r CreateTodoRequest) Publishment() entity.Publishment {
	if r.IsPublic {
		return entity.PublicPublishment()
	}
	return entity.PrivatePublishment(r.AlternativeName)
}

// ToSchedules converts and validates all schedule entries.
func (r CreateTodoRequest) ToSchedules() ([]entity.Schedule, error) {
	schedules := make([]entity.Schedule, 0, len(r.Schedules))
	for _, sr := range r.Schedules {
		s, err := sr.ToEntity()
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// UpdateTodoRequest for partial todo updates. Absent fields stay untouched.
type UpdateTodoRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	IsPublic        *bool      `json:"isPublic"`
	AlternativeName *string    `json:"alternativeName"`
	DeadlinedAt     *time.Time `json:"deadlinedAt"`
	ClearDeadline   bool       `json:"clearDeadline"`
	Status          *string    `json:"status"`
}

// ToCommand converts the request to a domain update command.
func (r UpdateTodoRequest) ToCommand(todoID id.ID) (entity.UpdateTodoCommand, error) {
	cmd := entity.UpdateTodoCommand{
		ID:            todoID,
		Name:          r.Name,
		Description:   r.Description,
		DeadlinedAt:   r.DeadlinedAt,
		ClearDeadline: r.ClearDeadline,
	}
	if r.IsPublic != nil {
		p := entity.PrivatePublishment(r.AlternativeName)
		if *r.IsPublic {
			p = entity.PublicPublishment()
		}
		cmd.Publishment = &p
	}
	if r.Status != nil {
		status := entity.ProgressStatus(*r.Status)
		switch status {
		case entity.ProgressOnProgress, entity.ProgressCompleted:
			cmd.Status = &status
		default:
			return entity.UpdateTodoCommand{}, apperror.NewValidation("unknown progress status").
				WithDetail("status", *r.Status)
		}
	}
	return cmd, nil
}
