package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stafftrack/internal/model"
	"stafftrack/internal/service"
)

func TestClockIn(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	bob := f.registerEmployee("Bob", "EMP002", "+15550002")

	task := f.createTask("Shift", "2026-03-02", "08:00", "17:00", alice.ID)

	t.Run("unknown task", func(t *testing.T) {
		_, err := f.attendance.ClockIn(f.ctx, uuid.New(), alice.ID, nil)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})

	t.Run("not assigned", func(t *testing.T) {
		_, err := f.attendance.ClockIn(f.ctx, task.ID, bob.ID, nil)
		assert.ErrorIs(t, err, service.ErrNotAssigned)
	})

	t.Run("starts the task", func(t *testing.T) {
		location := &model.Location{Latitude: 52.52, Longitude: 13.405}
		record, err := f.attendance.ClockIn(f.ctx, task.ID, alice.ID, location)
		require.NoError(t, err)
		assert.Equal(t, f.now, record.ClockInTime)
		assert.Equal(t, location, record.ClockInLocation)
		assert.False(t, record.ClockedOut())

		stored, err := f.store.Tasks().Get(f.ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TaskStarted, stored.Status)
	})

	t.Run("double clock in", func(t *testing.T) {
		_, err := f.attendance.ClockIn(f.ctx, task.ID, alice.ID, nil)
		assert.ErrorIs(t, err, service.ErrAlreadyClockedIn)
	})
}

func TestClockOut(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	task := f.createTask("Shift", "2026-03-02", "08:00", "17:00", alice.ID)

	t.Run("without a clock in", func(t *testing.T) {
		_, err := f.attendance.ClockOut(f.ctx, task.ID, alice.ID, nil)
		assert.ErrorIs(t, err, service.ErrNoClockInRecord)
	})

	t.Run("closes the record", func(t *testing.T) {
		_, err := f.attendance.ClockIn(f.ctx, task.ID, alice.ID, nil)
		require.NoError(t, err)

		f.now = f.now.Add(4 * time.Hour)

		record, err := f.attendance.ClockOut(f.ctx, task.ID, alice.ID, nil)
		require.NoError(t, err)
		require.NotNil(t, record.ClockOutTime)
		assert.Equal(t, 4*time.Hour, record.ClockOutTime.Sub(record.ClockInTime))
	})

	t.Run("double clock out", func(t *testing.T) {
		_, err := f.attendance.ClockOut(f.ctx, task.ID, alice.ID, nil)
		assert.ErrorIs(t, err, service.ErrAlreadyClockedOut)
	})
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	task := f.createTask("Shift", "2026-03-02", "08:00", "17:00", alice.ID)

	_, err := f.attendance.ClockIn(f.ctx, task.ID, alice.ID, nil)
	require.NoError(t, err)
	f.addRecord(alice.ID, f.now.Add(-24*time.Hour), 3*time.Hour)

	history, err := f.attendance.History(f.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// newest clock-in first
	assert.Equal(t, task.ID, history[0].Task)
	require.NotNil(t, history[0].TaskInfo)
	assert.Equal(t, "Shift", history[0].TaskInfo.Title)

	// the seeded record points at a task nobody stored
	assert.Nil(t, history[1].TaskInfo)
}

func TestEmployeeStats(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")

	f.createTask("Today", "2026-03-02", "08:00", "17:00", alice.ID)
	f.createTask("Tomorrow", "2026-03-03", "08:00", "17:00", alice.ID)

	// 7h55m rounds to 7.9, two sessions on distinct days
	morning := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	f.addRecord(alice.ID, morning, 7*time.Hour+55*time.Minute)
	f.addRecord(alice.ID, morning.AddDate(0, 0, -1), 2*time.Hour)
	f.addRecord(alice.ID, morning.Add(-36*time.Hour), 0) // still open, not counted

	stats, err := f.attendance.Stats(f.ctx, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 2, stats.UpcomingTasks)
	assert.Equal(t, 9.9, stats.TotalHours)
	assert.Equal(t, 2, stats.DaysPresent)
}

func TestTaskAttendance(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	bob := f.registerEmployee("Bob", "EMP002", "+15550002")
	carol := f.registerEmployee("Carol", "EMP003", "+15550003")

	task := f.createTask("Shift", "2026-03-02", "08:00", "17:00", alice.ID, bob.ID, carol.ID)

	_, err := f.attendance.ClockIn(f.ctx, task.ID, alice.ID, nil)
	require.NoError(t, err)
	_, err = f.attendance.ClockIn(f.ctx, task.ID, bob.ID, nil)
	require.NoError(t, err)

	f.now = f.now.Add(90 * time.Minute)
	_, err = f.attendance.ClockOut(f.ctx, task.ID, bob.ID, nil)
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)

	view, err := f.attendance.TaskAttendance(f.ctx, task.ID)
	require.NoError(t, err)

	assert.Equal(t, task.ID, view.Task.ID)
	require.Len(t, view.Employees, 3)

	byName := make(map[string]service.EmployeeAttendanceStatus)
	for _, status := range view.Employees {
		byName[status.Employee.Name] = status
	}

	assert.Equal(t, service.StatusWorking, byName["Alice"].Status)
	assert.Equal(t, 120, byName["Alice"].WorkingTime) // open record measured against now

	assert.Equal(t, service.StatusClockedOut, byName["Bob"].Status)
	assert.Equal(t, 90, byName["Bob"].WorkingTime)

	assert.Equal(t, service.StatusNotStarted, byName["Carol"].Status)
	assert.Equal(t, 0, byName["Carol"].WorkingTime)

	assert.Equal(t, service.TaskAttendanceSummary{Total: 3, Working: 1, Completed: 1, NotStarted: 1}, view.Summary)
}

func TestTaskAttendanceUnknownTask(t *testing.T) {
	f := newFixture(t)

	_, err := f.attendance.TaskAttendance(f.ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}
