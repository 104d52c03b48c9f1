// Package memstore holds mutex-guarded in-memory implementations of
// the service repository interfaces. It backs the test suite and the
// memory repository backend selected via config, and enforces the same
// uniqueness rules as the postgres schema.
package memstore

import (
	"slices"
	"sync"

	"stafftrack/internal/model"
)

type Store struct {
	mu sync.RWMutex

	users      map[model.ID]model.User
	userOrder  []model.ID
	tasks      map[model.ID]model.Task
	taskOrder  []model.ID
	records    map[model.ID]model.Attendance
	recOrder   []model.ID
	pairIndex  map[pairKey]model.ID
	userIDIdx  map[string]model.ID
	phoneIndex map[string]model.ID
}

type pairKey struct {
	task model.ID
	user model.ID
}

func New() *Store {
	return &Store{
		users:      make(map[model.ID]model.User),
		tasks:      make(map[model.ID]model.Task),
		records:    make(map[model.ID]model.Attendance),
		pairIndex:  make(map[pairKey]model.ID),
		userIDIdx:  make(map[string]model.ID),
		phoneIndex: make(map[string]model.ID),
	}
}

func cloneTask(task model.Task) model.Task {
	task.Employees = slices.Clone(task.Employees)
	return task
}
