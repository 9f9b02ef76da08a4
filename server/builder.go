package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"time"

	"github.com/SaiNageswarS/go-mvc-boot/config"
	"github.com/SaiNageswarS/go-mvc-boot/convention"
	"github.com/SaiNageswarS/go-mvc-boot/di"
	"github.com/SaiNageswarS/go-mvc-boot/logger"
	"github.com/SaiNageswarS/go-mvc-boot/render"
	"github.com/SaiNageswarS/go-mvc-boot/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ─── public fluent builder ───────────────────────────────────
type Builder struct {
	httpPort        string
	root            string
	cors            *cors.Cors
	renderers       render.Factory
	shutdownTimeout time.Duration

	limit rate.Limit
	burst int

	routes *router.Router
	extra  map[string]http.HandlerFunc

	// classes are registered at Build so ControllerRoot may be set in any order
	classes  []classReg
	bindings []bindReg

	metricsReg *prometheus.Registry
	metrics    *Metrics
}

type classReg struct {
	name       string
	controller bool // name is relative to the controller root
	ctor       any
	opts       []di.ClassOption
}

type bindReg struct {
	iface     any
	className string
}

func New() *Builder {
	reg := prometheus.NewRegistry()
	return &Builder{
		root:            convention.DefaultRoot,
		renderers:       render.NewJSON,
		shutdownTimeout: 10 * time.Second,
		routes:          router.New(),
		extra:           map[string]http.HandlerFunc{},
		metricsReg:      reg,
		metrics:         NewMetrics(reg),
	}
}

// ----- basic wiring ----------------------------------------------------------

func (b *Builder) HTTPPort(p string) *Builder { b.httpPort = p; return b }

// ControllerRoot sets the namespace controllers are registered and looked up under.
func (b *Builder) ControllerRoot(ns string) *Builder { b.root = ns; return b }

// CORS sets the policy handed to renderers. nil disables CORS.
func (b *Builder) CORS(c *cors.Cors) *Builder { b.cors = c; return b }

func (b *Builder) Renderer(f render.Factory) *Builder {
	if f == nil {
		logger.Fatal("renderer factory must not be nil")
	}
	b.renderers = f
	return b
}

func (b *Builder) ShutdownTimeout(d time.Duration) *Builder { b.shutdownTimeout = d; return b }

// RateLimit applies one token bucket to all dispatched requests.
func (b *Builder) RateLimit(limit rate.Limit, burst int) *Builder {
	b.limit, b.burst = limit, burst
	return b
}

func (b *Builder) Handle(pattern string, h http.HandlerFunc) *Builder {
	b.extra[pattern] = h
	return b
}

// FromConfig applies a loaded BootConfig.
func (b *Builder) FromConfig(cfg *config.BootConfig) *Builder {
	if cfg.HTTPPort != "" {
		b.HTTPPort(cfg.HTTPPort)
	}
	if cfg.ControllerRoot != "" {
		b.ControllerRoot(cfg.ControllerRoot)
	}
	if cfg.Renderer != "" {
		f, err := render.ByName(cfg.Renderer)
		if err != nil {
			logger.Fatal("Invalid renderer in config", zap.Error(err))
		}
		b.Renderer(f)
	}
	if policy := cfg.CORSPolicy(); policy != nil {
		b.CORS(policy)
	}
	if cfg.RateLimit > 0 {
		b.RateLimit(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}
	if cfg.ShutdownTimeout > 0 {
		b.ShutdownTimeout(cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}
	return b
}

// ----- dependency injection --------------------------------------------------

// Controller registers a controller under the controller root, e.g.
// Controller(`Admin\UserController`, NewUserController).
func (b *Builder) Controller(name string, ctor any, opts ...di.ClassOption) *Builder {
	checkCtor(name, ctor)
	b.classes = append(b.classes, classReg{name: name, controller: true, ctor: ctor, opts: opts})
	return b
}

// Provide registers any other class under its fully-qualified name.
func (b *Builder) Provide(name string, ctor any, opts ...di.ClassOption) *Builder {
	checkCtor(name, ctor)
	b.classes = append(b.classes, classReg{name: name, ctor: ctor, opts: opts})
	return b
}

// Bind resolves an interface, given as (*Iface)(nil), through a provided class.
func (b *Builder) Bind(ifacePtr any, className string) *Builder {
	b.bindings = append(b.bindings, bindReg{iface: ifacePtr, className: className})
	return b
}

func checkCtor(name string, ctor any) {
	v := reflect.ValueOf(ctor)
	if !v.IsValid() || (v.Kind() != reflect.Func && v.Kind() != reflect.Pointer) {
		logger.Fatal("constructor must be a func or a typed nil struct pointer",
			zap.String("class", name), zap.Any("received", ctor))
	}
}

// ----- routes ----------------------------------------------------------------

func (b *Builder) Route(method, path string, callback any) *Builder {
	if _, ok := callback.(string); !ok && !di.IsInvocable(callback) {
		logger.Fatal("route callback must be a Controller@action string or a func",
			zap.String("method", method), zap.String("path", path), zap.Any("received", callback))
	}
	b.routes.Handle(method, path, callback)
	return b
}

func (b *Builder) Get(path string, callback any) *Builder {
	return b.Route(http.MethodGet, path, callback)
}

func (b *Builder) Post(path string, callback any) *Builder {
	return b.Route(http.MethodPost, path, callback)
}

func (b *Builder) Put(path string, callback any) *Builder {
	return b.Route(http.MethodPut, path, callback)
}

func (b *Builder) Patch(path string, callback any) *Builder {
	return b.Route(http.MethodPatch, path, callback)
}

func (b *Builder) Delete(path string, callback any) *Builder {
	return b.Route(http.MethodDelete, path, callback)
}

func (b *Builder) Routes() []router.Route { return b.routes.Routes() }

// ----- build -----------------------------------------------------------------

// App registers every class and returns the dispatcher without opening a listener.
func (b *Builder) App() (*App, error) {
	registry := di.NewRegistry()

	for _, c := range b.classes {
		name := c.name
		if c.controller {
			name = convention.Join(b.root, c.name)
		}
		if err := registry.Register(name, c.ctor, c.opts...); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}
	for _, bd := range b.bindings {
		if err := registry.Bind(bd.iface, bd.className); err != nil {
			return nil, fmt.Errorf("bind %s: %w", bd.className, err)
		}
	}

	return NewApp(registry, b.root,
		WithCORS(b.cors),
		WithLogger(logger.Get()),
		WithMetrics(b.metrics),
	), nil
}

func (b *Builder) Build() (*BootServer, error) {
	if b.httpPort == "" {
		return nil, errors.New("http port must be set")
	}

	app, err := b.App()
	if err != nil {
		return nil, err
	}

	var dispatch http.Handler = NewHandler(app, b.routes, b.renderers)
	if b.limit > 0 {
		dispatch = rateLimited(rate.NewLimiter(b.limit, b.burst), dispatch)
	}

	mux := http.NewServeMux()
	mux.Handle("/", dispatch)
	mux.Handle("/metrics", promhttp.HandlerFor(b.metricsReg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// register extra handlers
	for p, h := range b.extra {
		mux.HandleFunc(p, h)
	}

	ln, err := net.Listen("tcp", b.httpPort)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	return &BootServer{
		app:             app,
		http:            httpSrv,
		ln:              ln,
		shutdownTimeout: b.shutdownTimeout,
	}, nil
}
