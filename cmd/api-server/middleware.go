package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/tomasen/realip"

	"stafftrack/internal/ctxstore"
	"stafftrack/internal/model"
	"stafftrack/internal/response"
)

const (
	_traceIDKey  = ctxstore.Key("traceId")
	_authUserKey = ctxstore.Key("authUser")
)

func (app *application) traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := genTraceID()
		ctx := ctxstore.With(r.Context(), _traceIDKey, tid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
			tid    = ctxstore.MustFrom[string](r.Context(), _traceIDKey)
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto, _traceIDKey.String(), tid)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		app.serverLogger().Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

func (app *application) CORS(next http.Handler) http.Handler {
	return cors.AllowAll().Handler(next)
}

// authenticate verifies the bearer token and resolves a live account,
// so a deactivated employee is locked out on the next request even
// with an unexpired token.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			app.unauthorized(w, r, "missing bearer token")
			return
		}

		userID, err := app.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			app.unauthorized(w, r, "invalid token")
			return
		}

		user, err := app.identity.Authenticate(r.Context(), userID)
		if err != nil {
			app.domainError(w, r, err)
			return
		}

		ctx := ctxstore.With(r.Context(), _authUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := authUser(r)
		if user.Role != model.RoleAdmin {
			app.forbidden(w, r, "admin only")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func authUser(r *http.Request) model.User {
	return ctxstore.MustFrom[model.User](r.Context(), _authUserKey)
}

func genTraceID() string {
	id, _ := uuid.NewRandom()
	return id.String()
}
