package memstore

import (
	"context"
	"slices"
	"time"

	"stafftrack/internal/model"
	"stafftrack/internal/service"
)

type AttendanceStore struct {
	store *Store
}

func (s *Store) Attendance() *AttendanceStore {
	return &AttendanceStore{store: s}
}

func (a *AttendanceStore) GetByTaskAndUser(_ context.Context, task, user model.ID) (model.Attendance, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	id, ok := a.store.pairIndex[pairKey{task: task, user: user}]
	if !ok {
		return model.Attendance{}, model.NewError("attendance", model.ErrNotFound)
	}
	return a.store.records[id], nil
}

func (a *AttendanceStore) FindByTask(_ context.Context, task model.ID) ([]model.Attendance, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	var records []model.Attendance
	for _, id := range a.store.recOrder {
		record := a.store.records[id]
		if record.Task == task {
			records = append(records, record)
		}
	}
	return records, nil
}

func (a *AttendanceStore) FindByUser(_ context.Context, user model.ID) ([]model.Attendance, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	var records []model.Attendance
	for _, id := range a.store.recOrder {
		record := a.store.records[id]
		if record.User == user {
			records = append(records, record)
		}
	}

	slices.SortStableFunc(records, func(x, y model.Attendance) int {
		return y.ClockInTime.Compare(x.ClockInTime)
	})

	return records, nil
}

func (a *AttendanceStore) Find(_ context.Context, filter service.AttendanceFilter) ([]model.Attendance, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	var records []model.Attendance
	for _, id := range a.store.recOrder {
		record := a.store.records[id]

		if filter.User != nil && record.User != *filter.User {
			continue
		}
		if filter.From != nil && record.ClockInTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && record.ClockInTime.After(*filter.To) {
			continue
		}
		if filter.ClockedOut != nil && record.ClockedOut() != *filter.ClockedOut {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// Insert enforces the (task, user) uniqueness constraint under the
// write lock, mirroring the unique index in the postgres schema.
func (a *AttendanceStore) Insert(_ context.Context, record model.Attendance) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	key := pairKey{task: record.Task, user: record.User}
	if _, exists := a.store.pairIndex[key]; exists {
		return model.NewError("attendance", model.ErrExists)
	}

	a.store.records[record.ID] = record
	a.store.recOrder = append(a.store.recOrder, record.ID)
	a.store.pairIndex[key] = record.ID

	return nil
}

func (a *AttendanceStore) SetClockOut(_ context.Context, id model.ID, at time.Time, location *model.Location) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	record, ok := a.store.records[id]
	if !ok {
		return model.NewError("attendance", model.ErrNotFound)
	}

	record.ClockOutTime = &at
	record.ClockOutLocation = location
	record.UpdatedAt = at
	a.store.records[id] = record

	return nil
}
