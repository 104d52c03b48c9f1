package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stafftrack/internal/model"
)

const _dateLayout = "2006-01-02"

func employeeIDFromRequest(r *http.Request) (model.ID, error) {
	return uuid.Parse(chi.URLParam(r, "employeeId"))
}

func taskIDFromRequest(r *http.Request) (model.ID, error) {
	return uuid.Parse(chi.URLParam(r, "taskId"))
}

func dateQueryParams(r *http.Request, key string) (time.Time, bool, error) {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return time.Time{}, false, nil
	}
	val = strings.Trim(val, "'\"")
	t, err := time.ParseInLocation(_dateLayout, val, time.Local)
	return t, true, err
}

func defaultIntQueryParams(r *http.Request, key string, def int) int {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return i
}
