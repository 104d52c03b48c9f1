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

// Attendance is the ledger of clock-in/clock-out events. The state
// machine per (task, employee) pair is NOT_STARTED -> WORKING ->
// CLOCKED_OUT, with no transition out of CLOCKED_OUT.
type Attendance struct {
	logger  *slog.Logger
	records AttendanceRepository
	tasks   TaskRepository
	users   UserRepository
	now     Clock
}

func NewAttendance(logger *slog.Logger, records AttendanceRepository, tasks TaskRepository, users UserRepository) *Attendance {
	return &Attendance{
		logger:  logger.With("service", "attendance"),
		records: records,
		tasks:   tasks,
		users:   users,
		now:     time.Now,
	}
}

// ClockIn opens an attendance record for the pair. The first clock-in
// against a pending task flips it to started. The storage-level
// uniqueness constraint makes a duplicate delivery (offline retry,
// double submit) surface as ErrAlreadyClockedIn instead of a second
// record.
func (s *Attendance) ClockIn(ctx context.Context, taskID, employee model.ID, location *model.Location) (model.Attendance, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Attendance{}, ErrTaskNotFound
		}
		return model.Attendance{}, err
	}

	if !slices.Contains(task.Employees, employee) {
		return model.Attendance{}, ErrNotAssigned
	}

	if _, err := s.records.GetByTaskAndUser(ctx, taskID, employee); err == nil {
		return model.Attendance{}, ErrAlreadyClockedIn
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.Attendance{}, err
	}

	now := s.now()
	record := model.Attendance{
		ID:              uuid.New(),
		CreatedAt:       now,
		UpdatedAt:       now,
		Task:            taskID,
		User:            employee,
		ClockInTime:     now,
		ClockInLocation: location,
	}

	if err := s.records.Insert(ctx, record); err != nil {
		if errors.Is(err, model.ErrExists) {
			return model.Attendance{}, ErrAlreadyClockedIn
		}
		return model.Attendance{}, fmt.Errorf("insert attendance: %w", err)
	}

	if task.Status == model.TaskPending {
		if err := s.tasks.UpdateStatus(ctx, taskID, model.TaskStarted); err != nil {
			return model.Attendance{}, fmt.Errorf("start task: %w", err)
		}
	}

	s.logger.Info("clock in", "task", taskID, "user", employee)

	return record, nil
}

func (s *Attendance) ClockOut(ctx context.Context, taskID, employee model.ID, location *model.Location) (model.Attendance, error) {
	record, err := s.records.GetByTaskAndUser(ctx, taskID, employee)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Attendance{}, ErrNoClockInRecord
		}
		return model.Attendance{}, err
	}

	if record.ClockedOut() {
		return model.Attendance{}, ErrAlreadyClockedOut
	}

	now := s.now()
	if err := s.records.SetClockOut(ctx, record.ID, now, location); err != nil {
		return model.Attendance{}, fmt.Errorf("set clock out: %w", err)
	}

	record.ClockOutTime = &now
	record.ClockOutLocation = location
	record.UpdatedAt = now

	s.logger.Info("clock out", "task", taskID, "user", employee)

	return record, nil
}

// TaskRef is the schedule context attached to a history entry.
type TaskRef struct {
	ID        model.ID  `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type HistoryEntry struct {
	model.Attendance
	TaskInfo *TaskRef `json:"task"`
}

// History returns the employee's records, newest clock-in first, each
// resolved with its task's title and time window.
func (s *Attendance) History(ctx context.Context, employee model.ID) ([]HistoryEntry, error) {
	records, err := s.records.FindByUser(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, record := range records {
		entry := HistoryEntry{Attendance: record}

		task, err := s.tasks.Get(ctx, record.Task)
		switch {
		case err == nil:
			entry.TaskInfo = &TaskRef{
				ID:        task.ID,
				Title:     task.Title,
				Date:      task.Date,
				StartTime: task.StartTime,
				EndTime:   task.EndTime,
			}
		case errors.Is(err, model.ErrNotFound):
			// record outlives any conceivable task removal
		default:
			return nil, fmt.Errorf("resolve task: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

type EmployeeStats struct {
	CompletedTasks int     `json:"completedTasks"`
	UpcomingTasks  int     `json:"upcomingTasks"`
	TotalHours     float64 `json:"totalHours"`
	DaysPresent    int     `json:"daysPresent"`
}

// Stats aggregates the employee's own numbers: closed sessions,
// upcoming assignments, hours worked (one decimal) and distinct days
// present.
func (s *Attendance) Stats(ctx context.Context, employee model.ID) (EmployeeStats, error) {
	clockedOut := true
	closed, err := s.records.Find(ctx, AttendanceFilter{User: &employee, ClockedOut: &clockedOut})
	if err != nil {
		return EmployeeStats{}, fmt.Errorf("find attendance: %w", err)
	}

	upcoming, err := s.tasks.CountForEmployee(ctx, employee, startOfDay(s.now()))
	if err != nil {
		return EmployeeStats{}, fmt.Errorf("count upcoming tasks: %w", err)
	}

	var totalHours float64
	days := make(map[string]struct{})
	for _, record := range closed {
		totalHours += record.ClockOutTime.Sub(record.ClockInTime).Hours()
		days[dateKey(record.ClockInTime)] = struct{}{}
	}

	return EmployeeStats{
		CompletedTasks: len(closed),
		UpcomingTasks:  upcoming,
		TotalHours:     round1(totalHours),
		DaysPresent:    len(days),
	}, nil
}

const (
	StatusNotStarted = "not-started"
	StatusWorking    = "working"
	StatusClockedOut = "clocked-out"
)

type EmployeeAttendanceStatus struct {
	Employee     EmployeeRef `json:"employee"`
	Status       string      `json:"status"`
	ClockInTime  *time.Time  `json:"clockInTime"`
	ClockOutTime *time.Time  `json:"clockOutTime"`
	WorkingTime  int         `json:"workingTime"`
}

type TaskAttendanceSummary struct {
	Total      int `json:"total"`
	Working    int `json:"working"`
	Completed  int `json:"completed"`
	NotStarted int `json:"notStarted"`
}

type TaskAttendanceView struct {
	Task      TaskDetail                 `json:"task"`
	Employees []EmployeeAttendanceStatus `json:"employees"`
	Summary   TaskAttendanceSummary      `json:"summary"`
}

// TaskAttendance is the admin monitoring view: every assigned
// employee with their current state and elapsed working minutes
// (floored, against now for open records).
func (s *Attendance) TaskAttendance(ctx context.Context, taskID model.ID) (TaskAttendanceView, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return TaskAttendanceView{}, ErrTaskNotFound
		}
		return TaskAttendanceView{}, err
	}

	staff, err := s.users.FindByIDs(ctx, task.Employees)
	if err != nil {
		return TaskAttendanceView{}, fmt.Errorf("resolve employees: %w", err)
	}

	records, err := s.records.FindByTask(ctx, taskID)
	if err != nil {
		return TaskAttendanceView{}, fmt.Errorf("find attendance: %w", err)
	}

	byUser := make(map[model.ID]model.Attendance, len(records))
	for _, record := range records {
		byUser[record.User] = record
	}

	now := s.now()
	view := TaskAttendanceView{
		Task: TaskDetail{
			ID:        task.ID,
			Title:     task.Title,
			Date:      task.Date,
			StartTime: task.StartTime,
			EndTime:   task.EndTime,
			Status:    task.Status,
			CreatedBy: task.CreatedBy,
			CreatedAt: task.CreatedAt,
		},
		Employees: make([]EmployeeAttendanceStatus, 0, len(staff)),
	}

	for _, user := range staff {
		status := EmployeeAttendanceStatus{
			Employee: EmployeeRef{
				ID:     user.ID,
				Name:   user.Name,
				UserID: user.UserID,
				Phone:  user.Phone,
			},
			Status: StatusNotStarted,
		}

		if record, ok := byUser[user.ID]; ok {
			clockIn := record.ClockInTime
			status.ClockInTime = &clockIn
			status.ClockOutTime = record.ClockOutTime

			end := now
			if record.ClockedOut() {
				end = *record.ClockOutTime
				status.Status = StatusClockedOut
			} else {
				status.Status = StatusWorking
			}
			status.WorkingTime = int(end.Sub(clockIn).Minutes())
		}

		view.Employees = append(view.Employees, status)

		switch status.Status {
		case StatusWorking:
			view.Summary.Working++
		case StatusClockedOut:
			view.Summary.Completed++
		default:
			view.Summary.NotStarted++
		}
	}

	view.Summary.Total = len(view.Employees)

	return view, nil
}
