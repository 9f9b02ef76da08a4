package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-mvc-boot/convention"
	"github.com/SaiNageswarS/go-mvc-boot/di"
	"github.com/SaiNageswarS/go-mvc-boot/logger"
	"github.com/SaiNageswarS/go-mvc-boot/render"
	"github.com/SaiNageswarS/go-mvc-boot/router"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var (
	ErrRouteNotFound       = errors.New("route not found")
	ErrUnsupportedCallback = errors.New("callback is neither a Controller@action string nor invocable")
	ErrRender              = errors.New("render failed")
)

// RouteResolver yields the callback and params for the current request, or
// false when no route matched.
type RouteResolver interface {
	Run() (*router.RouteResult, bool)
}

type Option func(*App)

// WithCORS sets the CORS policy handed to every renderer. A nil policy turns
// CORS off.
func WithCORS(policy *cors.Cors) Option {
	return func(a *App) { a.cors = policy }
}

// WithLogger replaces the package logger. nil silences the App.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) { a.log = log }
}

func WithMetrics(m *Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// App dispatches one matched route per call: it resolves the target, builds
// the controller and its method dependencies, invokes it and renders the
// result. It keeps no per-request state, so one App serves concurrent requests.
type App struct {
	registry *di.Registry
	parser   *convention.Parser
	resolver *di.Resolver
	cors     *cors.Cors
	log      *zap.Logger
	metrics  *Metrics
}

// NewApp builds an App over registry with controllers looked up under root.
func NewApp(registry *di.Registry, root string, opts ...Option) *App {
	a := &App{
		registry: registry,
		parser:   convention.NewParser(root, registry),
		log:      logger.Get(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	a.resolver = di.NewResolver(registry, a.log)
	return a
}

// Target parses and verifies a Controller@action string without invoking it.
func (a *App) Target(subject string) (convention.Target, error) {
	return a.parser.Resolve(subject)
}

// Dispatch runs one request end to end. ErrRouteNotFound is returned, and the
// renderer left untouched, when routes yields nothing.
func (a *App) Dispatch(routes RouteResolver, renderer render.Renderer) (err error) {
	start := time.Now()
	defer func() { a.metrics.observe(outcomeOf(err), start) }()

	result, ok := routes.Run()
	if !ok || result == nil {
		return ErrRouteNotFound
	}

	data, err := a.run(result.Callback, result.Params)
	if err != nil {
		return err
	}

	if a.cors != nil {
		renderer.SetCORS(a.cors)
	}
	renderer.SetData(data)
	if err := renderer.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func (a *App) run(callback any, params map[string]any) (any, error) {
	if subject, ok := callback.(string); ok {
		return a.invokeAction(subject, params)
	}

	// Direct callbacks get the route params untouched: no dependency merge.
	if di.IsInvocable(callback) {
		a.log.Debug("Invoking callback", zap.String("callback", fmt.Sprintf("%T", callback)))
		return di.CallFunc(callback, params)
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedCallback, callback)
}

func (a *App) invokeAction(subject string, params map[string]any) (any, error) {
	target, err := a.parser.Resolve(subject)
	if err != nil {
		return nil, err
	}
	method := target.Method()

	controller, err := a.resolver.ByClass(target.Controller)
	if err != nil {
		return nil, err
	}

	deps, err := a.resolver.Method(target.Controller, method)
	if err != nil {
		return nil, err
	}

	formal, err := a.registry.MethodParams(target.Controller, method)
	if err != nil {
		return nil, err
	}

	a.log.Debug("Invoking action",
		zap.String("controller", target.Controller),
		zap.String("method", method),
		zap.Int("resolved", len(deps)),
		zap.Int("params", len(params)))

	return di.Invoke(controller, method, formal, MergeParams(deps, params))
}

// MergeParams combines resolved dependencies with request params. On a key
// collision the resolved dependency wins.
func MergeParams(resolved, params map[string]any) map[string]any {
	merged := make(map[string]any, len(resolved)+len(params))
	for k, v := range params {
		merged[k] = v
	}
	for k, v := range resolved {
		merged[k] = v
	}
	return merged
}
