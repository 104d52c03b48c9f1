package service

import "errors"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindState
	KindForbidden
	KindAuth
)

// Error is a caller-visible domain failure with a stable category.
// Anything else escaping a service is an internal error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidation(message string) *Error { return &Error{Kind: KindValidation, Message: message} }
func NewNotFound(message string) *Error   { return &Error{Kind: KindNotFound, Message: message} }
func NewConflict(message string) *Error   { return &Error{Kind: KindConflict, Message: message} }
func NewState(message string) *Error      { return &Error{Kind: KindState, Message: message} }
func NewForbidden(message string) *Error  { return &Error{Kind: KindForbidden, Message: message} }
func NewAuth(message string) *Error       { return &Error{Kind: KindAuth, Message: message} }

func IsKind(err error, kind Kind) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Kind == kind
}

var (
	ErrInvalidCredentials = NewAuth("invalid credentials")
	ErrAccountDeactivated = NewAuth("account is deactivated")

	ErrEmployeeNotFound = NewNotFound("employee not found")
	ErrPhoneTaken       = NewConflict("phone number already in use")
	ErrUserIDTaken      = NewConflict("user id already exists")

	ErrTaskNotFound       = NewNotFound("task not found")
	ErrInvalidSchedule    = NewValidation("start time must be before end time")
	ErrScheduleConflict   = NewConflict("time conflict: another task is already scheduled during this time period")
	ErrInvalidEmployees   = NewValidation("one or more employee ids are invalid or inactive")
	ErrAllAlreadyAssigned = NewState("all selected employees are already assigned to this task")
	ErrEmployeeNotOnTask  = NewState("employee is not assigned to this task")
	ErrLastEmployee       = NewState("cannot remove the last employee from a task")

	ErrNotAssigned       = NewForbidden("you are not assigned to this task")
	ErrAlreadyClockedIn  = NewState("already clocked in for this task")
	ErrNoClockInRecord   = NewNotFound("no clock-in record found for this task")
	ErrAlreadyClockedOut = NewState("already clocked out")
)
