// Package router maps inbound requests to a callback and its parameters.
// Callbacks are either "Controller@action" strings or Go funcs; the router
// does not interpret them.
package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/exp/slices"
)

// RouteResult is what a matched request resolves to.
type RouteResult struct {
	Callback any
	Params   map[string]any
}

// Route describes one registration.
type Route struct {
	Method   string
	Path     string
	Callback any
}

func (r Route) name() string { return r.Method + " " + r.Path }

type Router struct {
	mux    *mux.Router
	routes map[string]Route
}

func New() *Router {
	return &Router{
		mux:    mux.NewRouter(),
		routes: map[string]Route{},
	}
}

// Handle registers callback for method and path. Paths use gorilla/mux
// syntax, e.g. "/users/{id:[0-9]+}". Registering the same method and path
// again replaces the callback.
func (r *Router) Handle(method, path string, callback any) *Router {
	route := Route{Method: method, Path: path, Callback: callback}
	if _, exists := r.routes[route.name()]; !exists {
		r.mux.NewRoute().Name(route.name()).Methods(method).Path(path)
	}
	r.routes[route.name()] = route
	return r
}

func (r *Router) Get(path string, callback any) *Router {
	return r.Handle(http.MethodGet, path, callback)
}

func (r *Router) Post(path string, callback any) *Router {
	return r.Handle(http.MethodPost, path, callback)
}

func (r *Router) Put(path string, callback any) *Router {
	return r.Handle(http.MethodPut, path, callback)
}

func (r *Router) Patch(path string, callback any) *Router {
	return r.Handle(http.MethodPatch, path, callback)
}

func (r *Router) Delete(path string, callback any) *Router {
	return r.Handle(http.MethodDelete, path, callback)
}

// Match finds the route for req. Path variables and the first value of each
// query parameter become Params; a path variable wins over a query parameter
// of the same name.
func (r *Router) Match(req *http.Request) (*RouteResult, bool) {
	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.MatchErr != nil || m.Route == nil {
		return nil, false
	}

	route, ok := r.routes[m.Route.GetName()]
	if !ok {
		return nil, false
	}

	params := make(map[string]any, len(m.Vars))
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	for key, value := range m.Vars {
		params[key] = value
	}

	return &RouteResult{Callback: route.Callback, Params: params}, true
}

// Routes lists registrations ordered by path, then method.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route)
	}
	slices.SortFunc(out, func(a, b Route) bool {
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Method < b.Method
	})
	return out
}

// Resolver binds the router to a single request.
type Resolver struct {
	router *Router
	req    *http.Request
}

func (r *Router) For(req *http.Request) *Resolver {
	return &Resolver{router: r, req: req}
}

// Run returns the matched route, or false when nothing matches.
func (r *Resolver) Run() (*RouteResult, bool) {
	return r.router.Match(r.req)
}
