package main

import (
	"stafftrack/internal/validator"
)

// Validation rules

func validateLogin(v *validator.Validator, request requestLogin) {
	v.CheckField(validator.NotBlank(request.Identifier), "identifier", "User ID or email is required")
	v.CheckField(validator.NotBlank(request.Password), "password", "Password is required")
}

func validateRegisterEmployee(v *validator.Validator, request requestRegisterEmployee) {
	v.CheckField(validator.NotBlank(request.Name), "name", "Name is required")
	v.CheckField(validator.MinRunes(request.Password, 6), "password", "Password must be at least 6 characters")
	if request.Email != nil {
		v.CheckField(validator.Matches(*request.Email, validator.RgxEmail), "email", "Email is not valid")
	}
	if request.UserID != nil {
		v.CheckField(validator.NotBlank(*request.UserID), "userId", "User ID cannot be blank")
	}
	if request.Phone != nil {
		v.CheckField(validator.NotBlank(*request.Phone), "phone", "Phone cannot be blank")
	}
}

func validateUpdateEmployee(v *validator.Validator, request requestUpdateEmployee) {
	if request.Name != nil {
		v.CheckField(validator.NotBlank(*request.Name), "name", "Name cannot be blank")
	}
	if request.Email != nil && *request.Email != "" {
		v.CheckField(validator.Matches(*request.Email, validator.RgxEmail), "email", "Email is not valid")
	}
}

func validateCreateTask(v *validator.Validator, request requestCreateTask) {
	v.CheckField(validator.NotBlank(request.Title), "title", "Title is required")
	v.CheckField(validator.NotBlank(request.Date), "date", "Date is required")
	v.CheckField(validator.Matches(request.StartTime, validator.RgxClock), "startTime", "Start time must be HH:MM")
	v.CheckField(validator.Matches(request.EndTime, validator.RgxClock), "endTime", "End time must be HH:MM")
	v.CheckField(len(request.Employees) >= 1, "employees", "At least one employee is required")
}
