package main

import (
	"net/http"

	"stafftrack/internal/model"
	"stafftrack/internal/request"
	"stafftrack/internal/response"
	"stafftrack/internal/validator"
)

type requestClock struct {
	TaskID    model.ID `json:"taskId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (req requestClock) location() *model.Location {
	if req.Latitude == nil || req.Longitude == nil {
		return nil
	}
	return &model.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
}

func (app *application) handleClockIn(w http.ResponseWriter, r *http.Request) {
	var input requestClock
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	v.CheckField(input.TaskID != model.ID{}, "taskId", "Task ID is required")
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	record, err := app.attendance.ClockIn(r.Context(), input.TaskID, authUser(r).ID, input.location())
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusCreated, record); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleClockOut(w http.ResponseWriter, r *http.Request) {
	var input requestClock
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	v.CheckField(input.TaskID != model.ID{}, "taskId", "Task ID is required")
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	record, err := app.attendance.ClockOut(r.Context(), input.TaskID, authUser(r).ID, input.location())
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, record); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleAttendanceHistory(w http.ResponseWriter, r *http.Request) {
	history, err := app.attendance.History(r.Context(), authUser(r).ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, history); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleAttendanceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := app.attendance.Stats(r.Context(), authUser(r).ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, stats); err != nil {
		app.serverError(w, r, err)
	}
}
