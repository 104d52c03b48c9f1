package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stafftrack/internal/memstore"
	"stafftrack/internal/model"
	"stafftrack/internal/service"
	"stafftrack/internal/token"
)

// fixture wires every service against one in-memory store with an
// adjustable clock, so state machine tests can move time forward.
type fixture struct {
	t     *testing.T
	ctx   context.Context
	now   time.Time
	store *memstore.Store
	admin model.User

	identity   *service.Identity
	tasks      *service.Tasks
	attendance *service.Attendance
	analytics  *service.Analytics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		now:   time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
		store: memstore.New(),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users, tasks, records := f.store.Users(), f.store.Tasks(), f.store.Attendance()

	f.identity = service.NewIdentity(logger, users, token.NewIssuer("test-secret", time.Hour))
	f.tasks = service.NewTasks(logger, tasks, users, records)
	f.attendance = service.NewAttendance(logger, records, tasks, users)
	f.analytics = service.NewAnalytics(logger, records, users)

	clock := func() time.Time { return f.now }
	f.identity.SetClock(clock)
	f.tasks.SetClock(clock)
	f.attendance.SetClock(clock)
	f.analytics.SetClock(clock)

	require.NoError(t, f.identity.EnsureAdmin(f.ctx, "Admin", "admin@example.com", "adminsecret"))
	admin, err := users.GetByEmail(f.ctx, "admin@example.com")
	require.NoError(t, err)
	f.admin = admin

	return f
}

func (f *fixture) registerEmployee(name, userID, phone string) model.User {
	f.t.Helper()

	user, err := f.identity.RegisterEmployee(f.ctx, service.RegisterEmployeeParams{
		Name:     name,
		Password: "secret123",
		UserID:   &userID,
		Phone:    &phone,
	})
	require.NoError(f.t, err)

	return user
}

func (f *fixture) createTask(title, date, start, end string, staff ...model.ID) service.TaskDetail {
	f.t.Helper()

	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	require.NoError(f.t, err)

	detail, err := f.tasks.Create(f.ctx, service.CreateTaskParams{
		Title:     title,
		Date:      day,
		StartTime: start,
		EndTime:   end,
		Employees: staff,
		CreatedBy: f.admin.ID,
	})
	require.NoError(f.t, err)

	return detail
}

// addRecord seeds an attendance record directly, bypassing the clock
// in flow, against a throwaway task id. Duration zero leaves the
// record open.
func (f *fixture) addRecord(user model.ID, clockIn time.Time, duration time.Duration) model.Attendance {
	f.t.Helper()

	record := model.Attendance{
		ID:          uuid.New(),
		CreatedAt:   clockIn,
		UpdatedAt:   clockIn,
		Task:        uuid.New(),
		User:        user,
		ClockInTime: clockIn,
	}
	if duration > 0 {
		clockOut := clockIn.Add(duration)
		record.ClockOutTime = &clockOut
	}

	require.NoError(f.t, f.store.Attendance().Insert(f.ctx, record))

	return record
}
