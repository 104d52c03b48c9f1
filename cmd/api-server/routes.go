package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS)

	mux.Route("/api/v1", func(mux chi.Router) {
		mux.Get("/status", app.handleStatus)

		mux.Post("/auth/login", app.handleLogin)

		mux.Group(func(mux chi.Router) {
			mux.Use(app.authenticate)

			mux.Get("/tasks/my", app.handleListMyTasks)

			mux.Post("/attendance/clock-in", app.handleClockIn)
			mux.Post("/attendance/clock-out", app.handleClockOut)
			mux.Get("/attendance/history", app.handleAttendanceHistory)
			mux.Get("/attendance/stats", app.handleAttendanceStats)
		})

		mux.Group(func(mux chi.Router) {
			mux.Use(app.authenticate, app.requireAdmin)

			mux.Post("/auth/register", app.handleRegisterEmployee)
			mux.Get("/auth/employees", app.handleListEmployees)
			mux.Put("/auth/employees/{employeeId}", app.handleUpdateEmployee)
			mux.Delete("/auth/employees/{employeeId}", app.handleDeactivateEmployee)

			mux.Post("/tasks", app.handleCreateTask)
			mux.Get("/tasks/admin", app.handleListAdminTasks)
			mux.Put("/tasks/{taskId}/employees/add", app.handleAddTaskEmployees)
			mux.Put("/tasks/{taskId}/employees/remove", app.handleRemoveTaskEmployee)
			mux.Get("/tasks/{taskId}/attendance", app.handleTaskAttendance)

			mux.Get("/analytics/work-time", app.handleWorkTime)
			mux.Get("/analytics/top-performers", app.handleTopPerformers)
			mux.Get("/analytics/attendance-stats", app.handleAttendanceOverview)
			mux.Get("/analytics/work-time-trend", app.handleWorkTimeTrend)
		})
	})

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}
