package wbem

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coreidcc/go-wbemcore/com"
)

// Helper is a connected client for one management namespace. It owns
// the locator and services handles exclusively and releases both on
// Close. Construction either fully succeeds or releases everything it
// acquired.
type Helper struct {
	id        uuid.UUID
	namespace string
	locator   com.Locator
	services  com.Services
	log       zerolog.Logger
}

// Option configures a Helper during Connect.
type Option func(*connectConfig)

type connectConfig struct {
	runtime *Runtime
	log     zerolog.Logger
}

// WithRuntime makes the Helper use the given Runtime instead of the
// process-wide default. Mainly for tests that need an isolated
// initialization lifecycle.
func WithRuntime(rt *Runtime) Option {
	return func(c *connectConfig) {
		c.runtime = rt
	}
}

// WithLogger attaches a logger to the Helper and the streams it
// creates. Without it the Helper stays silent.
func WithLogger(log zerolog.Logger) Option {
	return func(c *connectConfig) {
		c.log = log
	}
}

// Connect builds a Helper for the given namespace path. It ensures
// the shared Runtime initialized, then connects in two steps: create
// a locator, then use it to connect to the namespace. Either step
// failing returns a ConnectionError naming the step, and never leaks
// the locator acquired so far.
func Connect(api com.API, namespace string, opts ...Option) (*Helper, error) {
	cfg := connectConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runtime == nil {
		cfg.runtime = DefaultRuntime(api)
	}
	if err := cfg.runtime.ensure(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := cfg.log.With().Stringer("helper", id).Str("namespace", namespace).Logger()

	locator, code := api.CreateLocator()
	if code.Failed() {
		return nil, &ConnectionError{Step: "locator", Namespace: namespace, Code: code}
	}

	services, code := locator.ConnectServer(namespace)
	if code.Failed() {
		locator.Release()
		return nil, &ConnectionError{Step: "connect", Namespace: namespace, Code: code}
	}

	log.Debug().Msg("connected")
	return &Helper{
		id:        id,
		namespace: namespace,
		locator:   locator,
		services:  services,
		log:       log,
	}, nil
}

// ID returns the Helper's identifier, used in log correlation.
func (h *Helper) ID() uuid.UUID {
	return h.id
}

// Namespace returns the namespace path the Helper is connected to.
func (h *Helper) Namespace() string {
	return h.namespace
}

// Query submits a query string against the connected namespace and
// returns the stream over its results. Submission is semi-synchronous
// and forward-only: the call returns once the service accepted the
// query, iterating the stream may block until data is available, and
// objects already iterated can be freed by the service. A submission
// failure returns a QueryError carrying the query text.
func (h *Helper) Query(query string) (*Result, error) {
	enum, code := h.services.ExecQuery(
		com.QueryLanguage, query,
		com.QueryForwardOnly|com.QueryReturnImmediately)
	if code.Failed() {
		return nil, &QueryError{Query: query, Code: code}
	}
	h.log.Debug().Str("query", query).Msg("query submitted")
	return newResult(enum, h.log)
}

// GetClass enumerates all instances of the named class, with the same
// submission semantics and failure contract as Query.
func (h *Helper) GetClass(class string) (*Result, error) {
	enum, code := h.services.CreateInstanceEnum(
		class, com.QueryForwardOnly|com.QueryReturnImmediately)
	if code.Failed() {
		return nil, &QueryError{Query: class, Code: code}
	}
	h.log.Debug().Str("class", class).Msg("instance enumeration submitted")
	return newResult(enum, h.log)
}

// Close releases the services proxy and the locator. Idempotent.
func (h *Helper) Close() {
	if h.services != nil {
		h.services.Release()
		h.services = nil
	}
	if h.locator != nil {
		h.locator.Release()
		h.locator = nil
	}
}
