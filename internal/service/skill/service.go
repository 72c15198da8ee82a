// Package skill routes inbound events to intent handlers and composes
// their responses. Dispatch is a flat first-match-wins scan over an ordered
// handler list; there is no rule engine behind it.
package skill

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/joemocode/cakewalk-skill/internal/model/request"
	"github.com/joemocode/cakewalk-skill/internal/model/response"
	"github.com/joemocode/cakewalk-skill/internal/service/assets"
	"github.com/joemocode/cakewalk-skill/internal/service/timezone"
	"github.com/joemocode/cakewalk-skill/internal/store"
)

// Input is what handlers see: the inbound envelope plus the session state
// the interceptors prepared.
type Input struct {
	Envelope request.Envelope
	Session  *Session
}

// Handler is one (predicate, action) pair. Predicates are evaluated in
// registration order and exactly the first match runs. A predicate may
// inspect session state as well as the envelope, so future multi-turn
// handlers slot in without dispatch changes.
type Handler interface {
	CanHandle(ctx context.Context, in *Input) bool
	Handle(ctx context.Context, in *Input) (response.Response, error)
}

// Interceptor runs once per inbound event before dispatch. A returned
// error is logged and swallowed; interceptor failure never aborts dispatch.
type Interceptor interface {
	Process(ctx context.Context, in *Input) error
}

// Deps carries everything the built-in handlers need. Logger, Tracer,
// Meter and Clock are optional.
type Deps struct {
	Store       store.Store
	TimeZones   timezone.Client
	Assets      assets.Resolver
	DefaultZone *time.Location
	Logger      *slog.Logger
	Tracer      trace.Tracer
	Meter       metric.Meter
	Clock       func() time.Time
}

// Service dispatches inbound events. It holds no per-event state, so one
// instance serves concurrent sessions.
type Service struct {
	handlers     []Handler
	errorHandler Handler
	interceptors []Interceptor

	logger *slog.Logger
	tracer trace.Tracer

	dispatches metric.Int64Counter
	faults     metric.Int64Counter
	unmatched  metric.Int64Counter
}

// NewService wires the full handler chain. Registration order is the
// dispatch order: the reflector must stay last or it shadows every named
// intent, and the birthday-aware launch handler must precede the default
// one.
func NewService(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.DefaultZone == nil {
		deps.DefaultZone = time.UTC
	}

	handlers := []Handler{
		&hasBirthdayLaunchHandler{
			timeZones:   deps.TimeZones,
			assets:      deps.Assets,
			defaultZone: deps.DefaultZone,
			clock:       deps.Clock,
			logger:      deps.Logger,
		},
		&defaultLaunchHandler{assets: deps.Assets},
		&captureBirthdayHandler{store: deps.Store, assets: deps.Assets},
		&helpHandler{},
		&cancelStopHandler{},
		&sessionEndedHandler{},
		&reflectorHandler{},
	}
	interceptors := []Interceptor{
		&loadBirthdayInterceptor{store: deps.Store, logger: deps.Logger},
	}

	return newService(deps, handlers, &errorHandler{}, interceptors)
}

func newService(deps Deps, handlers []Handler, errHandler Handler, interceptors []Interceptor) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("skill")
	}
	meter := deps.Meter
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("skill")
	}

	s := &Service{
		handlers:     handlers,
		errorHandler: errHandler,
		interceptors: interceptors,
		logger:       deps.Logger,
		tracer:       tracer,
	}
	s.dispatches, _ = meter.Int64Counter("skill.dispatches")
	s.faults, _ = meter.Int64Counter("skill.faults")
	s.unmatched, _ = meter.Int64Counter("skill.unmatched")
	return s
}

// Dispatch routes one inbound event to the first matching handler and
// returns its response. Faults and unmatched events both resolve to the
// error handler's apology; Dispatch never fails up to the transport.
func (s *Service) Dispatch(ctx context.Context, env request.Envelope) response.Response {
	ctx, span := s.tracer.Start(ctx, "skill.dispatch")
	defer span.End()

	requestID := uuid.NewString()
	in := &Input{Envelope: env, Session: NewSession(env.SessionID)}

	for _, ic := range s.interceptors {
		if err := ic.Process(ctx, in); err != nil {
			s.logger.Warn("interceptor failed",
				"requestId", requestID, "type", env.Type, "error", err)
		}
	}

	s.dispatches.Add(ctx, 1)

	for _, h := range s.handlers {
		if !h.CanHandle(ctx, in) {
			continue
		}
		resp, err := h.Handle(ctx, in)
		if err != nil {
			s.faults.Add(ctx, 1)
			span.RecordError(err)
			s.logger.Error("handler fault",
				"requestId", requestID, "type", env.Type, "handler", handlerName(h), "error", err)
			return s.apologize(ctx, in)
		}
		return resp
	}

	s.unmatched.Add(ctx, 1)
	s.logger.Warn("no handler matched", "requestId", requestID, "type", env.Type)
	return s.apologize(ctx, in)
}

func (s *Service) apologize(ctx context.Context, in *Input) response.Response {
	resp, err := s.errorHandler.Handle(ctx, in)
	if err != nil {
		// The canned apology cannot fail; keep a bare spoken fallback anyway.
		return response.Response{Speech: apologySpeech}
	}
	return resp
}
