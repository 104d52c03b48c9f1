package main

import (
	"net/http"

	"stafftrack/internal/model"
	"stafftrack/internal/request"
	"stafftrack/internal/response"
	"stafftrack/internal/service"
	"stafftrack/internal/validator"
)

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"status": "OK"}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestLogin struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type responseLogin struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input requestLogin
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateLogin(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	user, bearer, err := app.identity.Login(r.Context(), input.Identifier, input.Password)
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseLogin{User: user, Token: bearer}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestRegisterEmployee struct {
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	UserID   *string `json:"userId"`
}

func (app *application) handleRegisterEmployee(w http.ResponseWriter, r *http.Request) {
	var input requestRegisterEmployee
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateRegisterEmployee(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	employee, err := app.identity.RegisterEmployee(r.Context(), service.RegisterEmployeeParams{
		Name:     input.Name,
		Password: input.Password,
		Phone:    input.Phone,
		Email:    input.Email,
		UserID:   input.UserID,
	})
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusCreated, employee); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := app.identity.ListEmployees(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, employees); err != nil {
		app.serverError(w, r, err)
	}
}

type requestUpdateEmployee struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"isActive"`
}

func (app *application) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestUpdateEmployee
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateUpdateEmployee(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	employee, err := app.identity.UpdateEmployee(r.Context(), employeeID, service.UpdateEmployeeParams{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		IsActive: input.IsActive,
	})
	if err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, employee); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	if err := app.identity.DeactivateEmployee(r.Context(), employeeID); err != nil {
		app.domainError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"message": "Employee deactivated successfully"}); err != nil {
		app.serverError(w, r, err)
	}
}
