package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stafftrack/internal/memstore"
	"stafftrack/internal/model"
	"stafftrack/internal/service"
)

func TestAttendancePairUniqueness(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	records := store.Attendance()

	task, user := uuid.New(), uuid.New()

	first := model.Attendance{ID: uuid.New(), Task: task, User: user, ClockInTime: time.Now()}
	require.NoError(t, records.Insert(ctx, first))

	dup := model.Attendance{ID: uuid.New(), Task: task, User: user, ClockInTime: time.Now()}
	assert.ErrorIs(t, records.Insert(ctx, dup), model.ErrExists)

	// same user on a different task is fine
	other := model.Attendance{ID: uuid.New(), Task: uuid.New(), User: user, ClockInTime: time.Now()}
	assert.NoError(t, records.Insert(ctx, other))
}

func TestAttendanceFind(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	records := store.Attendance()

	user := uuid.New()
	base := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	out := base.Add(2 * time.Hour)

	require.NoError(t, records.Insert(ctx, model.Attendance{
		ID: uuid.New(), Task: uuid.New(), User: user, ClockInTime: base, ClockOutTime: &out,
	}))
	require.NoError(t, records.Insert(ctx, model.Attendance{
		ID: uuid.New(), Task: uuid.New(), User: user, ClockInTime: base.AddDate(0, 0, 1),
	}))
	require.NoError(t, records.Insert(ctx, model.Attendance{
		ID: uuid.New(), Task: uuid.New(), User: uuid.New(), ClockInTime: base,
	}))

	t.Run("by user", func(t *testing.T) {
		got, err := records.Find(ctx, service.AttendanceFilter{User: &user})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("closed only", func(t *testing.T) {
		clockedOut := true
		got, err := records.Find(ctx, service.AttendanceFilter{User: &user, ClockedOut: &clockedOut})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.NotNil(t, got[0].ClockOutTime)
	})

	t.Run("window", func(t *testing.T) {
		from := base.Add(time.Hour)
		got, err := records.Find(ctx, service.AttendanceFilter{From: &from})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	users := store.Users()

	userID, phone := "EMP001", "+15550001"
	alice := model.User{ID: uuid.New(), Name: "Alice", UserID: &userID, Phone: &phone, Role: model.RoleEmployee, IsActive: true}
	require.NoError(t, users.Insert(ctx, alice))

	t.Run("duplicate user id", func(t *testing.T) {
		dup := model.User{ID: uuid.New(), Name: "Bob", UserID: &userID, Role: model.RoleEmployee}
		assert.ErrorIs(t, users.Insert(ctx, dup), model.ErrExists)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		dup := model.User{ID: uuid.New(), Name: "Bob", Phone: &phone, Role: model.RoleEmployee}
		assert.ErrorIs(t, users.Insert(ctx, dup), model.ErrExists)
	})

	t.Run("phone reindexed on update", func(t *testing.T) {
		newPhone := "+15550009"
		alice.Phone = &newPhone
		require.NoError(t, users.Update(ctx, alice))

		reclaimed := model.User{ID: uuid.New(), Name: "Bob", Phone: &phone, Role: model.RoleEmployee}
		assert.NoError(t, users.Insert(ctx, reclaimed))
	})
}

func TestTaskEmployeeIsolation(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	tasks := store.Tasks()

	employee := uuid.New()
	task := model.Task{
		ID:        uuid.New(),
		Title:     "Shift",
		Date:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "08:00",
		EndTime:   "12:00",
		Status:    model.TaskPending,
		Employees: []model.ID{employee},
	}
	require.NoError(t, tasks.Insert(ctx, task))

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)

	// mutating the returned slice must not leak into the store
	got.Employees[0] = uuid.New()

	again, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, employee, again.Employees[0])
}
