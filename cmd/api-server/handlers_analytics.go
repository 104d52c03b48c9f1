package main

import (
	"net/http"
	"time"

	"stafftrack/internal/response"
	"stafftrack/internal/service"
)

func rangeQueryParams(r *http.Request) (service.Range, error) {
	var rng service.Range

	from, ok, err := dateQueryParams(r, "startDate")
	if err != nil {
		return rng, err
	}
	if ok {
		rng.From = &from
	}

	to, ok, err := dateQueryParams(r, "endDate")
	if err != nil {
		return rng, err
	}
	if ok {
		// Make the upper bound inclusive of the named day.
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		rng.To = &end
	}

	return rng, nil
}

func (app *application) handleWorkTime(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeQueryParams(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	limit := defaultIntQueryParams(r, "limit", 10)

	report, err := app.analytics.WorkTimeByEmployee(r.Context(), rng, limit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, report); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	period := defaultIntQueryParams(r, "period", 30)
	limit := defaultIntQueryParams(r, "limit", 5)

	performers, err := app.analytics.TopPerformers(r.Context(), period, limit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, performers); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleAttendanceOverview(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeQueryParams(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	report, err := app.analytics.AttendanceStats(r.Context(), rng)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, report); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleWorkTimeTrend(w http.ResponseWriter, r *http.Request) {
	days := defaultIntQueryParams(r, "days", 7)

	trend, err := app.analytics.WorkTimeTrend(r.Context(), days)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, trend); err != nil {
		app.serverError(w, r, err)
	}
}
