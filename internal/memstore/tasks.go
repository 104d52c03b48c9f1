package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"stafftrack/internal/model"
)

// TaskStore exposes the task repository surface over the shared
// store. A separate type keeps the method sets of the three
// repositories from colliding on Get/Insert names.
type TaskStore struct {
	store *Store
}

func (s *Store) Tasks() *TaskStore {
	return &TaskStore{store: s}
}

func (t *TaskStore) Get(_ context.Context, id model.ID) (model.Task, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	task, ok := t.store.tasks[id]
	if !ok {
		return model.Task{}, model.NewError("task", model.ErrNotFound)
	}
	return cloneTask(task), nil
}

func (t *TaskStore) FindOnDate(_ context.Context, date time.Time) ([]model.Task, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	var tasks []model.Task
	for _, id := range t.store.taskOrder {
		task := t.store.tasks[id]
		if sameDate(task.Date, date) && task.Status != model.TaskCompleted {
			tasks = append(tasks, cloneTask(task))
		}
	}
	return tasks, nil
}

func (t *TaskStore) FindAll(_ context.Context) ([]model.Task, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	tasks := make([]model.Task, 0, len(t.store.taskOrder))
	for _, id := range t.store.taskOrder {
		tasks = append(tasks, cloneTask(t.store.tasks[id]))
	}

	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		return b.Date.Compare(a.Date)
	})

	return tasks, nil
}

func (t *TaskStore) FindForEmployee(_ context.Context, employee model.ID, from time.Time) ([]model.Task, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	var tasks []model.Task
	for _, id := range t.store.taskOrder {
		task := t.store.tasks[id]
		if slices.Contains(task.Employees, employee) && !task.Date.Before(from) {
			tasks = append(tasks, cloneTask(task))
		}
	}

	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.StartTime, b.StartTime)
	})

	return tasks, nil
}

func (t *TaskStore) CountForEmployee(ctx context.Context, employee model.ID, from time.Time) (int, error) {
	tasks, err := t.FindForEmployee(ctx, employee, from)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (t *TaskStore) Insert(_ context.Context, task model.Task) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.tasks[task.ID] = cloneTask(task)
	t.store.taskOrder = append(t.store.taskOrder, task.ID)

	return nil
}

func (t *TaskStore) UpdateStatus(_ context.Context, id model.ID, status model.TaskStatus) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	task, ok := t.store.tasks[id]
	if !ok {
		return model.NewError("task", model.ErrNotFound)
	}

	task.Status = status
	t.store.tasks[id] = task

	return nil
}

func (t *TaskStore) AddEmployees(_ context.Context, id model.ID, employees []model.ID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	task, ok := t.store.tasks[id]
	if !ok {
		return model.NewError("task", model.ErrNotFound)
	}

	for _, employee := range employees {
		if !slices.Contains(task.Employees, employee) {
			task.Employees = append(task.Employees, employee)
		}
	}
	t.store.tasks[id] = task

	return nil
}

func (t *TaskStore) RemoveEmployee(_ context.Context, id model.ID, employee model.ID) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	task, ok := t.store.tasks[id]
	if !ok {
		return model.NewError("task", model.ErrNotFound)
	}

	task.Employees = slices.DeleteFunc(slices.Clone(task.Employees), func(other model.ID) bool {
		return other == employee
	})
	t.store.tasks[id] = task

	return nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
