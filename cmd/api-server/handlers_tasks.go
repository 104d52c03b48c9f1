package main

import (
	"fmt"
	"net/http"
	"time"

	"stafftrack/internal/model"
	"stafftrack/internal/request"
	"stafftrack/internal/response"
	"stafftrack/internal/service"
	"stafftrack/internal/validator"
)

type requestCreateTask struct {
	Title     string     `json:"title"`
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Employees []model.ID `json:"employees"`
}

func (app *application) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var input requestCreateTask
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateCreateTask(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	date, err := time.ParseInLocation(_dateLayout, input.Date, time.Local)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("parse date: %w", err))
		return
	}

	task, err := app.tasks.Create(r.Context(), service.CreateTaskParams{
		Title:     input.Title,
		Date:      date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Employees: input.Employees,
		CreatedBy: authUser(r).ID,
	})
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusCreated, task); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListAdminTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := app.tasks.ListForAdmin(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, tasks); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListMyTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := app.tasks.ListForEmployee(r.Context(), authUser(r).ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, tasks); err != nil {
		app.serverError(w, r, err)
	}
}

type requestTaskEmployees struct {
	Employees []model.ID `json:"employees"`
}

func (app *application) handleAddTaskEmployees(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestTaskEmployees
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	v.CheckField(len(input.Employees) >= 1, "employees", "At least one employee is required")
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	task, err := app.tasks.AddEmployees(r.Context(), taskID, input.Employees)
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, task); err != nil {
		app.serverError(w, r, err)
	}
}

type requestTaskEmployee struct {
	Employee model.ID `json:"employee"`
}

func (app *application) handleRemoveTaskEmployee(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestTaskEmployee
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	task, err := app.tasks.RemoveEmployee(r.Context(), taskID, input.Employee)
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, task); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleTaskAttendance(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	view, err := app.attendance.TaskAttendance(r.Context(), taskID)
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, view); err != nil {
		app.serverError(w, r, err)
	}
}
