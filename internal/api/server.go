package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/pdusim/internal/auth"
	"github.com/nerrad567/pdusim/internal/events"
	"github.com/nerrad567/pdusim/internal/infrastructure/config"
	"github.com/nerrad567/pdusim/internal/infrastructure/logging"
	"github.com/nerrad567/pdusim/internal/outlet"
	"github.com/nerrad567/pdusim/internal/sensor"
	"github.com/nerrad567/pdusim/internal/telemetry"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Recorder receives sensor readings and outlet state transitions for
// time-series storage. *influxdb.Client satisfies it; nil disables
// recording.
type Recorder interface {
	WriteReading(sensorID, quantity, units string, value float64)
	WriteOutletState(outlet int, on bool)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config        config.APIConfig
	PDU           config.PDUConfig
	Logger        *logging.Logger
	Bank          *outlet.Bank
	Engine        *telemetry.Engine
	Resolver      *sensor.Resolver
	Auth          *auth.Service
	Subscriptions events.Repository
	Notifier      *events.Notifier // optional: broker notifications
	Recorder      Recorder         // optional: time-series recording
	Version       string
}

// Server is the HTTP management API server.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg      config.APIConfig
	pdu      config.PDUConfig
	logger   *logging.Logger
	bank     *outlet.Bank
	engine   *telemetry.Engine
	resolver *sensor.Resolver
	auth     *auth.Service
	subs     events.Repository
	notifier *events.Notifier
	recorder Recorder
	version  string
	server   *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, bank, resolver, auth)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Bank == nil {
		return nil, fmt.Errorf("outlet bank is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("telemetry engine is required")
	}
	if deps.Resolver == nil {
		return nil, fmt.Errorf("sensor resolver is required")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if deps.Subscriptions == nil {
		return nil, fmt.Errorf("subscription repository is required")
	}

	return &Server{
		cfg:      deps.Config,
		pdu:      deps.PDU,
		logger:   deps.Logger,
		bank:     deps.Bank,
		engine:   deps.Engine,
		resolver: deps.Resolver,
		auth:     deps.Auth,
		subs:     deps.Subscriptions,
		notifier: deps.Notifier,
		recorder: deps.Recorder,
		version:  deps.Version,
	}, nil
}

// Handler returns the fully assembled HTTP handler.
// Exposed for tests that drive the router through httptest.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
//
// Parameters:
//   - ctx: Context for cancellation (not used for listener lifetime)
//
// Returns:
//   - error: If the server fails to start (port in use, etc.)
func (s *Server) Start(_ context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("management API listening", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
