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

func TestCreateTaskScheduleConflict(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")

	f.createTask("Morning shift", "2026-03-02", "08:00", "17:00", alice.ID)

	create := func(date, start, end string) error {
		day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
		require.NoError(t, err)
		_, err = f.tasks.Create(f.ctx, service.CreateTaskParams{
			Title:     "Other",
			Date:      day,
			StartTime: start,
			EndTime:   end,
			Employees: []model.ID{alice.ID},
			CreatedBy: f.admin.ID,
		})
		return err
	}

	tt := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr error
	}{
		{name: "nested window", date: "2026-03-02", start: "10:00", end: "12:00", wantErr: service.ErrScheduleConflict},
		{name: "straddles the end", date: "2026-03-02", start: "16:00", end: "18:00", wantErr: service.ErrScheduleConflict},
		{name: "covers the whole day", date: "2026-03-02", start: "07:00", end: "19:00", wantErr: service.ErrScheduleConflict},
		{name: "back to back", date: "2026-03-02", start: "17:00", end: "18:00", wantErr: nil},
		{name: "different date", date: "2026-03-03", start: "10:00", end: "12:00", wantErr: nil},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := create(tc.date, tc.start, tc.end)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTaskCompletedTasksDoNotContest(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")

	task := f.createTask("Morning shift", "2026-03-02", "08:00", "12:00", alice.ID)
	require.NoError(t, f.store.Tasks().UpdateStatus(f.ctx, task.ID, model.TaskCompleted))

	f.createTask("Replacement", "2026-03-02", "09:00", "11:00", alice.ID)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	inactive := f.registerEmployee("Bob", "EMP002", "+15550002")
	require.NoError(t, f.identity.DeactivateEmployee(f.ctx, inactive.ID))

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	create := func(start, end string, staff []model.ID) error {
		_, err := f.tasks.Create(f.ctx, service.CreateTaskParams{
			Title:     "Shift",
			Date:      day,
			StartTime: start,
			EndTime:   end,
			Employees: staff,
			CreatedBy: f.admin.ID,
		})
		return err
	}

	t.Run("start after end", func(t *testing.T) {
		assert.ErrorIs(t, create("17:00", "08:00", []model.ID{alice.ID}), service.ErrInvalidSchedule)
	})

	t.Run("start equals end", func(t *testing.T) {
		assert.ErrorIs(t, create("08:00", "08:00", []model.ID{alice.ID}), service.ErrInvalidSchedule)
	})

	t.Run("unknown employee", func(t *testing.T) {
		assert.ErrorIs(t, create("08:00", "12:00", []model.ID{uuid.New()}), service.ErrInvalidEmployees)
	})

	t.Run("inactive employee", func(t *testing.T) {
		assert.ErrorIs(t, create("08:00", "12:00", []model.ID{inactive.ID}), service.ErrInvalidEmployees)
	})

	t.Run("admin in staff list", func(t *testing.T) {
		assert.ErrorIs(t, create("08:00", "12:00", []model.ID{f.admin.ID}), service.ErrInvalidEmployees)
	})

	t.Run("duplicated employee id", func(t *testing.T) {
		assert.ErrorIs(t, create("08:00", "12:00", []model.ID{alice.ID, alice.ID}), service.ErrInvalidEmployees)
	})
}

func TestAddEmployees(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	bob := f.registerEmployee("Bob", "EMP002", "+15550002")

	task := f.createTask("Shift", "2026-03-02", "08:00", "12:00", alice.ID)

	t.Run("all already assigned", func(t *testing.T) {
		_, err := f.tasks.AddEmployees(f.ctx, task.ID, []model.ID{alice.ID})
		assert.ErrorIs(t, err, service.ErrAllAlreadyAssigned)
	})

	t.Run("only newcomers are added", func(t *testing.T) {
		detail, err := f.tasks.AddEmployees(f.ctx, task.ID, []model.ID{alice.ID, bob.ID})
		require.NoError(t, err)
		require.Len(t, detail.Employees, 2)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := f.tasks.AddEmployees(f.ctx, uuid.New(), []model.ID{bob.ID})
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}

func TestRemoveEmployee(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	bob := f.registerEmployee("Bob", "EMP002", "+15550002")
	carol := f.registerEmployee("Carol", "EMP003", "+15550003")

	task := f.createTask("Shift", "2026-03-02", "08:00", "12:00", alice.ID, bob.ID)

	t.Run("not on the task", func(t *testing.T) {
		_, err := f.tasks.RemoveEmployee(f.ctx, task.ID, carol.ID)
		assert.ErrorIs(t, err, service.ErrEmployeeNotOnTask)
	})

	t.Run("removes the employee", func(t *testing.T) {
		detail, err := f.tasks.RemoveEmployee(f.ctx, task.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, detail.Employees, 1)
		assert.Equal(t, alice.ID, detail.Employees[0].ID)
	})

	t.Run("last employee stays", func(t *testing.T) {
		_, err := f.tasks.RemoveEmployee(f.ctx, task.ID, alice.ID)
		assert.ErrorIs(t, err, service.ErrLastEmployee)
	})
}

func TestListForAdmin(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")

	f.createTask("Earlier", "2026-03-02", "08:00", "12:00", alice.ID)
	f.createTask("Later", "2026-03-05", "08:00", "12:00", alice.ID)

	details, err := f.tasks.ListForAdmin(f.ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, "Later", details[0].Title)
	assert.Equal(t, "Earlier", details[1].Title)
	require.Len(t, details[0].Employees, 1)
	assert.Equal(t, "Alice", details[0].Employees[0].Name)
}

func TestListForEmployee(t *testing.T) {
	f := newFixture(t)
	alice := f.registerEmployee("Alice", "EMP001", "+15550001")
	bob := f.registerEmployee("Bob", "EMP002", "+15550002")

	f.createTask("Yesterday", "2026-03-01", "08:00", "12:00", alice.ID)
	today := f.createTask("Today", "2026-03-02", "08:00", "12:00", alice.ID)
	f.createTask("Someone else", "2026-03-03", "08:00", "12:00", bob.ID)

	t.Run("without attendance", func(t *testing.T) {
		entries, err := f.tasks.ListForEmployee(f.ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Today", entries[0].Title)
		assert.Nil(t, entries[0].MyAttendance)
	})

	t.Run("clocked in", func(t *testing.T) {
		_, err := f.attendance.ClockIn(f.ctx, today.ID, alice.ID, nil)
		require.NoError(t, err)

		entries, err := f.tasks.ListForEmployee(f.ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, entries[0].MyAttendance)
		assert.Equal(t, "clocked-in", entries[0].MyAttendance.Status)
	})

	t.Run("clocked out", func(t *testing.T) {
		f.now = f.now.Add(2 * time.Hour)
		_, err := f.attendance.ClockOut(f.ctx, today.ID, alice.ID, nil)
		require.NoError(t, err)

		entries, err := f.tasks.ListForEmployee(f.ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, entries[0].MyAttendance)
		assert.Equal(t, "clocked-out", entries[0].MyAttendance.Status)
		require.NotNil(t, entries[0].MyAttendance.ClockOutTime)
	})
}
