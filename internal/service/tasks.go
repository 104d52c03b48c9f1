package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"stafftrack/internal/model"
)

// Tasks is the task registry: creation with schedule conflict
// detection, staff management and the admin/employee listings.
type Tasks struct {
	logger     *slog.Logger
	tasks      TaskRepository
	users      UserRepository
	attendance AttendanceRepository
	now        Clock
}

func NewTasks(logger *slog.Logger, tasks TaskRepository, users UserRepository, attendance AttendanceRepository) *Tasks {
	return &Tasks{
		logger:     logger.With("service", "tasks"),
		tasks:      tasks,
		users:      users,
		attendance: attendance,
		now:        time.Now,
	}
}

// EmployeeRef is the display record resolved from the identity store
// when a task is returned with its staff list.
type EmployeeRef struct {
	ID     model.ID `json:"id"`
	Name   string   `json:"name"`
	UserID *string  `json:"userId,omitempty"`
	Phone  *string  `json:"phone,omitempty"`
}

type TaskDetail struct {
	ID        model.ID         `json:"id"`
	Title     string           `json:"title"`
	Date      time.Time        `json:"date"`
	StartTime string           `json:"startTime"`
	EndTime   string           `json:"endTime"`
	Status    model.TaskStatus `json:"status"`
	Employees []EmployeeRef    `json:"employees"`
	CreatedBy model.ID         `json:"createdBy"`
	CreatedAt time.Time        `json:"createdAt"`
}

type CreateTaskParams struct {
	Title     string
	Date      time.Time
	StartTime string
	EndTime   string
	Employees []model.ID
	CreatedBy model.ID
}

func (s *Tasks) Create(ctx context.Context, params CreateTaskParams) (TaskDetail, error) {
	if minuteOfDay(params.StartTime) >= minuteOfDay(params.EndTime) {
		return TaskDetail{}, ErrInvalidSchedule
	}

	// Completed tasks no longer contest their window, so only
	// pending/started tasks on the same date are candidates.
	sameDate, err := s.tasks.FindOnDate(ctx, startOfDay(params.Date))
	if err != nil {
		return TaskDetail{}, fmt.Errorf("find tasks on date: %w", err)
	}

	for _, other := range sameDate {
		if timesOverlap(params.StartTime, params.EndTime, other.StartTime, other.EndTime) {
			return TaskDetail{}, ErrScheduleConflict
		}
	}

	staff, err := s.activeEmployees(ctx, params.Employees)
	if err != nil {
		return TaskDetail{}, err
	}

	now := s.now()
	task := model.Task{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     params.Title,
		Date:      startOfDay(params.Date),
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Status:    model.TaskPending,
		Employees: params.Employees,
		CreatedBy: params.CreatedBy,
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return TaskDetail{}, fmt.Errorf("insert task: %w", err)
	}

	s.logger.Info("task created", "task", task.ID, "date", dateKey(task.Date))

	return s.detail(task, staff), nil
}

func (s *Tasks) AddEmployees(ctx context.Context, taskID model.ID, employees []model.ID) (TaskDetail, error) {
	task, err := s.get(ctx, taskID)
	if err != nil {
		return TaskDetail{}, err
	}

	if _, err := s.activeEmployees(ctx, employees); err != nil {
		return TaskDetail{}, err
	}

	var newcomers []model.ID
	for _, id := range employees {
		if !slices.Contains(task.Employees, id) && !slices.Contains(newcomers, id) {
			newcomers = append(newcomers, id)
		}
	}

	if len(newcomers) == 0 {
		return TaskDetail{}, ErrAllAlreadyAssigned
	}

	if err := s.tasks.AddEmployees(ctx, taskID, newcomers); err != nil {
		return TaskDetail{}, fmt.Errorf("add employees: %w", err)
	}

	task.Employees = append(task.Employees, newcomers...)

	return s.resolveDetail(ctx, task)
}

func (s *Tasks) RemoveEmployee(ctx context.Context, taskID, employee model.ID) (TaskDetail, error) {
	task, err := s.get(ctx, taskID)
	if err != nil {
		return TaskDetail{}, err
	}

	if !slices.Contains(task.Employees, employee) {
		return TaskDetail{}, ErrEmployeeNotOnTask
	}

	if len(task.Employees) == 1 {
		return TaskDetail{}, ErrLastEmployee
	}

	if err := s.tasks.RemoveEmployee(ctx, taskID, employee); err != nil {
		return TaskDetail{}, fmt.Errorf("remove employee: %w", err)
	}

	task.Employees = slices.DeleteFunc(task.Employees, func(id model.ID) bool {
		return id == employee
	})

	return s.resolveDetail(ctx, task)
}

// ListForAdmin returns every task with resolved staff, newest date
// first.
func (s *Tasks) ListForAdmin(ctx context.Context) ([]TaskDetail, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all tasks: %w", err)
	}

	var ids []model.ID
	for _, task := range tasks {
		ids = append(ids, task.Employees...)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}

	byID := make(map[model.ID]model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	details := make([]TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		staff := make([]model.User, 0, len(task.Employees))
		for _, id := range task.Employees {
			if user, ok := byID[id]; ok {
				staff = append(staff, user)
			}
		}
		details = append(details, s.detail(task, staff))
	}

	return details, nil
}

type MyAttendance struct {
	ClockInTime  time.Time  `json:"clockInTime"`
	ClockOutTime *time.Time `json:"clockOutTime,omitempty"`
	Status       string     `json:"status"`
}

type EmployeeTask struct {
	model.Task
	MyAttendance *MyAttendance `json:"myAttendance"`
}

// ListForEmployee returns the employee's tasks from the start of the
// current day onward, each annotated with the caller's own attendance
// state.
func (s *Tasks) ListForEmployee(ctx context.Context, employee model.ID) ([]EmployeeTask, error) {
	tasks, err := s.tasks.FindForEmployee(ctx, employee, startOfDay(s.now()))
	if err != nil {
		return nil, fmt.Errorf("find tasks for employee: %w", err)
	}

	result := make([]EmployeeTask, 0, len(tasks))
	for _, task := range tasks {
		entry := EmployeeTask{Task: task}

		record, err := s.attendance.GetByTaskAndUser(ctx, task.ID, employee)
		switch {
		case err == nil:
			status := "clocked-in"
			if record.ClockedOut() {
				status = "clocked-out"
			}
			entry.MyAttendance = &MyAttendance{
				ClockInTime:  record.ClockInTime,
				ClockOutTime: record.ClockOutTime,
				Status:       status,
			}
		case errors.Is(err, model.ErrNotFound):
			// no record yet
		default:
			return nil, fmt.Errorf("lookup attendance: %w", err)
		}

		result = append(result, entry)
	}

	return result, nil
}

func (s *Tasks) get(ctx context.Context, id model.ID) (model.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

// activeEmployees resolves the requested ids and rejects the whole
// request when any id is missing, inactive, duplicated or not an
// employee account.
func (s *Tasks) activeEmployees(ctx context.Context, ids []model.ID) ([]model.User, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}

	valid := users[:0]
	for _, user := range users {
		if user.Role == model.RoleEmployee && user.IsActive {
			valid = append(valid, user)
		}
	}

	if len(valid) != len(ids) {
		return nil, ErrInvalidEmployees
	}

	return valid, nil
}

func (s *Tasks) resolveDetail(ctx context.Context, task model.Task) (TaskDetail, error) {
	staff, err := s.users.FindByIDs(ctx, task.Employees)
	if err != nil {
		return TaskDetail{}, fmt.Errorf("resolve employees: %w", err)
	}
	return s.detail(task, staff), nil
}

func (s *Tasks) detail(task model.Task, staff []model.User) TaskDetail {
	refs := make([]EmployeeRef, 0, len(staff))
	for _, user := range staff {
		refs = append(refs, EmployeeRef{
			ID:     user.ID,
			Name:   user.Name,
			UserID: user.UserID,
			Phone:  user.Phone,
		})
	}

	return TaskDetail{
		ID:        task.ID,
		Title:     task.Title,
		Date:      task.Date,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
		Status:    task.Status,
		Employees: refs,
		CreatedBy: task.CreatedBy,
		CreatedAt: task.CreatedAt,
	}
}
