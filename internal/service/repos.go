package service

import (
	"context"
	"time"

	"stafftrack/internal/model"
)

// Repository interfaces consumed by the services. The postgres
// implementations live in internal/database, the in-memory ones in
// internal/memstore. Storage implementations report absence and
// uniqueness violations with model.ErrNotFound / model.ErrExists.

type UserRepository interface {
	Get(ctx context.Context, id model.ID) (model.User, error)
	GetByUserID(ctx context.Context, userID string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByPhone(ctx context.Context, phone string) (model.User, error)

	// FindEmployees returns every employee account, newest first.
	FindEmployees(ctx context.Context) ([]model.User, error)
	FindByIDs(ctx context.Context, ids []model.ID) ([]model.User, error)
	CountActiveEmployees(ctx context.Context) (int, error)

	Insert(ctx context.Context, user model.User) error
	Update(ctx context.Context, user model.User) error
}

type TaskRepository interface {
	Get(ctx context.Context, id model.ID) (model.Task, error)

	// FindOnDate returns every non-completed task scheduled on the
	// given calendar date, the candidate set for conflict checking.
	FindOnDate(ctx context.Context, date time.Time) ([]model.Task, error)

	// FindAll returns all tasks, most recent date first.
	FindAll(ctx context.Context) ([]model.Task, error)

	// FindForEmployee returns tasks assigned to the employee with
	// date >= from, ascending by date then start time.
	FindForEmployee(ctx context.Context, employee model.ID, from time.Time) ([]model.Task, error)
	CountForEmployee(ctx context.Context, employee model.ID, from time.Time) (int, error)

	Insert(ctx context.Context, task model.Task) error
	UpdateStatus(ctx context.Context, id model.ID, status model.TaskStatus) error
	AddEmployees(ctx context.Context, id model.ID, employees []model.ID) error
	RemoveEmployee(ctx context.Context, id model.ID, employee model.ID) error
}

// AttendanceFilter narrows attendance lookups. From/To apply to the
// clock-in time; ClockedOut=true keeps only closed records.
type AttendanceFilter struct {
	From       *time.Time
	To         *time.Time
	ClockedOut *bool
	User       *model.ID
}

type AttendanceRepository interface {
	GetByTaskAndUser(ctx context.Context, task, user model.ID) (model.Attendance, error)
	FindByTask(ctx context.Context, task model.ID) ([]model.Attendance, error)

	// FindByUser returns the employee's records, newest clock-in first.
	FindByUser(ctx context.Context, user model.ID) ([]model.Attendance, error)
	Find(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error)

	// Insert must enforce the (task, user) uniqueness constraint
	// atomically and return model.ErrExists on violation. This is the
	// guarantee that closes the concurrent double clock-in race.
	Insert(ctx context.Context, record model.Attendance) error
	SetClockOut(ctx context.Context, id model.ID, at time.Time, location *model.Location) error
}
