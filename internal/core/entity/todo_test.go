package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayTimeRange(t *testing.T) {
	_, err := NewDayTime(23, 59, 59)
	require.NoError(t, err)

	for _, bad := range [][3]int{{24, 0, 0}, {-1, 0, 0}, {0, 60, 0}, {0, 0, 60}} {
		_, err := NewDayTime(bad[0], bad[1], bad[2])
		assert.Error(t, err, "input %v", bad)
	}
}

func TestScheduleValidate(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	from, _ := NewDayTime(9, 0, 0)
	to, _ := NewDayTime(10, 0, 0)
	monday := time.Monday
	day15 := 15

	valid := []Schedule{
		{Kind: ScheduleOnce, StartsAt: &start, EndsAt: &end},
		{Kind: ScheduleDaily, StartTime: &from, EndTime: &to},
		{Kind: ScheduleWeekly, StartTime: &from, EndTime: &to, Weekday: &monday},
		{Kind: ScheduleMonthly, StartTime: &from, EndTime: &to, MonthDay: &day15},
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), "kind %s", s.Kind)
	}

	day32 := 32
	invalid := []Schedule{
		{Kind: ScheduleOnce, StartsAt: &start},
		{Kind: ScheduleOnce, StartsAt: &end, EndsAt: &start},
		{Kind: ScheduleDaily, StartTime: &from},
		{Kind: ScheduleWeekly, StartTime: &from, EndTime: &to},
		{Kind: ScheduleMonthly, StartTime: &from, EndTime: &to, MonthDay: &day32},
		{Kind: ScheduleKind("yearly")},
	}
	for _, s := range invalid {
		assert.Error(t, s.Validate(), "kind %s", s.Kind)
	}
}

func TestUpdateTodoCommandIsEmpty(t *testing.T) {
	assert.True(t, UpdateTodoCommand{}.IsEmpty())

	name := "n"
	assert.False(t, UpdateTodoCommand{Name: &name}.IsEmpty())
	assert.False(t, UpdateTodoCommand{ClearDeadline: true}.IsEmpty())
}
