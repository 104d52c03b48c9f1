package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stafftrack/internal/ctxstore"
	"stafftrack/internal/response"
	"stafftrack/internal/service"
	"stafftrack/internal/validator"
)

func (app *application) reportServerError(r *http.Request, err error) {
	var (
		message = err.Error()
		method  = r.Method
		url     = r.URL.String()
		tid, _  = ctxstore.From[string](r.Context(), _traceIDKey)
	)

	requestAttrs := []any{"method", method, "url", url, _traceIDKey.String(), tid}
	app.logger.Error(message, "request", requestAttrs)
}

func (app *application) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	message = strings.ToUpper(message[:1]) + message[1:]

	err := response.JSONWithHeaders(w, status, response.JSONObject{"message": message}, headers)
	if err != nil {
		app.reportServerError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.reportServerError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorMessage(w, r, http.StatusInternalServerError, message, nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource could not be found"
	app.errorMessage(w, r, http.StatusNotFound, message, nil)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	app.errorMessage(w, r, http.StatusMethodNotAllowed, message, nil)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.errorMessage(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (app *application) failedValidation(w http.ResponseWriter, r *http.Request, v validator.Validator) {
	err := response.JSON(w, http.StatusUnprocessableEntity, v)
	if err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	headers := make(http.Header)
	headers.Set("WWW-Authenticate", "Bearer")

	app.errorMessage(w, r, http.StatusUnauthorized, message, headers)
}

func (app *application) forbidden(w http.ResponseWriter, r *http.Request, message string) {
	app.errorMessage(w, r, http.StatusForbidden, message, nil)
}

// domainError maps a service failure category to its HTTP status.
// Anything untyped is an internal error.
func (app *application) domainError(w http.ResponseWriter, r *http.Request, err error) {
	var serr *service.Error
	if !errors.As(err, &serr) {
		app.serverError(w, r, err)
		return
	}

	switch serr.Kind {
	case service.KindValidation:
		app.errorMessage(w, r, http.StatusBadRequest, serr.Message, nil)
	case service.KindNotFound:
		app.errorMessage(w, r, http.StatusNotFound, serr.Message, nil)
	case service.KindConflict, service.KindState:
		app.errorMessage(w, r, http.StatusConflict, serr.Message, nil)
	case service.KindForbidden:
		app.forbidden(w, r, serr.Message)
	case service.KindAuth:
		app.unauthorized(w, r, serr.Message)
	default:
		app.serverError(w, r, err)
	}
}
