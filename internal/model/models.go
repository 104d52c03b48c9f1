package model

import (
	"time"

	"github.com/google/uuid"
)

type ID = uuid.UUID

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskStarted   TaskStatus = "started"
	TaskCompleted TaskStatus = "completed"
)

type User struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Name   string  `json:"name" db:"name"`
	UserID *string `json:"userId,omitempty" db:"user_id"`
	Email  *string `json:"email,omitempty" db:"email"`
	Phone  *string `json:"phone,omitempty" db:"phone"`

	PasswordHash string `json:"-" db:"password_hash"`

	Role     Role `json:"role" db:"role"`
	IsActive bool `json:"isActive" db:"is_active"`
}

// Task start and end times are wall-clock "HH:MM" strings on a single
// calendar date. Employees holds references into the identity store,
// never embedded records.
type Task struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Title     string     `json:"title" db:"title"`
	Date      time.Time  `json:"date" db:"task_date"`
	StartTime string     `json:"startTime" db:"start_time"`
	EndTime   string     `json:"endTime" db:"end_time"`
	Status    TaskStatus `json:"status" db:"status"`

	Employees []ID `json:"employees" db:"-"`

	CreatedBy ID `json:"createdBy" db:"created_by"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Attendance is created on clock-in and mutated exactly once, on
// clock-out. At most one record exists per (task, user) pair.
type Attendance struct {
	ID        ID        `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Task ID `json:"taskId"`
	User ID `json:"userId"`

	ClockInTime      time.Time  `json:"clockInTime"`
	ClockInLocation  *Location  `json:"clockInLocation,omitempty"`
	ClockOutTime     *time.Time `json:"clockOutTime,omitempty"`
	ClockOutLocation *Location  `json:"clockOutLocation,omitempty"`
}

// ClockedOut reports whether the record is closed. A closed record
// never reopens.
func (a Attendance) ClockedOut() bool {
	return a.ClockOutTime != nil
}
