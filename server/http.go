package server

import (
	"errors"
	"net/http"

	"github.com/SaiNageswarS/go-mvc-boot/render"
	"github.com/SaiNageswarS/go-mvc-boot/router"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// StatusError lets a controller pick the HTTP status of its failure.
type StatusError struct {
	Status  int
	Message string
}

func NewStatusError(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

func (e *StatusError) Error() string { return e.Message }

// Handler serves an App over HTTP.
type Handler struct {
	app       *App
	routes    *router.Router
	renderers render.Factory
}

func NewHandler(app *App, routes *router.Router, renderers render.Factory) *Handler {
	if renderers == nil {
		renderers = render.NewJSON
	}
	return &Handler{app: app, routes: routes, renderers: renderers}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.app.cors != nil && isPreflight(r) {
		h.app.cors.HandlerFunc(w, r)
		return
	}

	err := h.app.Dispatch(h.routes.For(r), h.renderers(w, r))
	if err == nil {
		return
	}

	fields := []zap.Field{zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err)}

	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrRouteNotFound):
		h.app.log.Info("Route not found", fields...)
		http.Error(w, ErrRouteNotFound.Error(), http.StatusNotFound)
	case errors.As(err, &statusErr):
		h.app.log.Info("Request failed", append(fields, zap.Int("status", statusErr.Status))...)
		http.Error(w, statusErr.Message, statusErr.Status)
	case errors.Is(err, ErrRender):
		// the renderer may already have written a partial response
		h.app.log.Error("Render failed", fields...)
	default:
		h.app.log.Error("Dispatch failed", fields...)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

func rateLimited(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
