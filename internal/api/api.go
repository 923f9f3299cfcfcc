// Package api serves the validator over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/fieldguard/handler"
	"github.com/dmitrymomot/fieldguard/internal/metrics"
	"github.com/dmitrymomot/fieldguard/pkg/httpserver"
	"github.com/dmitrymomot/fieldguard/pkg/i18n"
	"github.com/dmitrymomot/fieldguard/pkg/logger"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

var (
	errUnknownPolicy = handler.HTTPError{Code: http.StatusBadRequest, Key: "unknown_policy"}
	errUnknownField  = handler.HTTPError{Code: http.StatusBadRequest, Key: "unknown_field"}
	errFormNotFound  = handler.HTTPError{Code: http.StatusNotFound, Key: "form_not_found"}
	errTooManyForms  = handler.HTTPError{Code: http.StatusServiceUnavailable, Key: "too_many_forms"}
	errEmptyRegistry = errors.New("policy registry is empty")
)

const defaultFormsLimit = 10_000

// API holds the dependencies of the HTTP endpoints.
type API struct {
	registry       *validator.Registry
	log            *slog.Logger
	metrics        *metrics.Metrics
	metricsHandler http.Handler
	forms          *formStore
	translator     *i18n.Translator
	errorHandler   handler.ErrorHandler[handler.Context]
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

// WithMetrics records validation and traffic metrics and serves h on /metrics.
func WithMetrics(m *metrics.Metrics, h http.Handler) Option {
	return func(a *API) {
		a.metrics = m
		a.metricsHandler = h
	}
}

// WithTranslator localizes rejection messages using the request language.
func WithTranslator(t *i18n.Translator) Option {
	return func(a *API) {
		a.translator = t
	}
}

// WithFormsLimit caps the number of forms held in memory.
func WithFormsLimit(n int) Option {
	if n <= 0 {
		panic("WithFormsLimit: limit must be > 0")
	}
	return func(a *API) {
		a.forms.limit = n
	}
}

// New creates the API over registry. A nil registry panics.
func New(registry *validator.Registry, opts ...Option) *API {
	if registry == nil {
		panic("api.New: registry is required")
	}

	a := &API{
		registry: registry,
		log:      logger.Discard(),
		forms:    newFormStore(defaultFormsLimit),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.errorHandler = handler.NewJSONErrorHandler(a.log)

	return a
}

// Router returns the HTTP handler with all routes mounted.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.metrics.Middleware)
	if a.translator != nil {
		r.Use(i18n.Middleware(a.translator))
	}

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.log, a.registryReady))
	if a.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", a.metricsHandler)
	}

	r.Get("/policies", wrap(a, a.listPolicies))
	r.Post("/validate", wrap(a, a.validate, handler.JSONBinder()))

	r.Route("/forms", func(r chi.Router) {
		r.Post("/", wrap(a, a.openForm, handler.JSONBinder()))
		r.Get("/{id}", wrap(a, a.getForm))
		r.Patch("/{id}", wrap(a, a.changeField, handler.JSONBinder()))
		r.Delete("/{id}", wrap(a, a.closeForm))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
	})

	return r
}

// RequestIDExtractor adds the chi request id to every record logged with a
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := middleware.GetReqID(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}

func (a *API) registryReady(context.Context) error {
	if len(a.registry.Names()) == 0 {
		return errEmptyRegistry
	}
	return nil
}

func wrap[R any](a *API, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](a.errorHandler),
	)
}

// fail logs a client error and renders it.
func (a *API) fail(ctx handler.Context, err error, detail *handler.ErrorDetail) handler.Response {
	a.log.WarnContext(ctx, "request rejected",
		logger.Error(err),
		logger.Component("api"),
	)
	if detail != nil {
		return handler.JSONError(err, handler.WithJSONErrorDetail(detail))
	}
	return handler.JSONError(err)
}
