package wbem

import (
	"sync"

	"github.com/coreidcc/go-wbemcore/com"
)

// Runtime performs the process-wide, one-time initialization of the
// native environment and its eventual teardown. All Helpers in a
// process share one Runtime; the first Connect triggers
// initialization, main defers Shutdown.
//
// Initialization is two sequential steps, runtime environment then
// security policy, and fails atomically: when the second step fails
// the first is rolled back and the whole initialization counts as not
// having happened. The outcome, success or failure, is permanent for
// the life of the process: a failed Runtime returns the same
// InitializationError to every later caller.
type Runtime struct {
	api  com.API
	once sync.Once
	err  error

	shutdown sync.Once
}

// NewRuntime binds a Runtime to a native backend. Nothing happens
// until the first ensure.
func NewRuntime(api com.API) *Runtime {
	return &Runtime{api: api}
}

// ensure runs the one-time initialization. Safe for concurrent use:
// callers racing the first initialization block until it completed,
// then observe its recorded outcome.
func (r *Runtime) ensure() error {
	r.once.Do(func() {
		if code := r.api.InitializeRuntime(); code.Failed() {
			r.err = &InitializationError{Step: "runtime", Code: code}
			return
		}
		if code := r.api.InitializeSecurity(); code.Failed() {
			r.api.ShutdownRuntime()
			r.err = &InitializationError{Step: "security", Code: code}
		}
	})
	return r.err
}

// Shutdown tears the environment down, once, if it was initialized.
// Intended for process exit, after all Helpers released their handles.
func (r *Runtime) Shutdown() {
	r.shutdown.Do(func() {
		r.once.Do(func() {
			// Never initialized: record the runtime as spent so a
			// late ensure cannot initialize after teardown.
			r.err = &InitializationError{Step: "runtime", Code: com.CodeInvalidOperation}
		})
		if r.err == nil {
			r.api.ShutdownRuntime()
		}
	})
}

var (
	defaultRuntimeMu sync.Mutex
	defaultRuntime   *Runtime
)

// DefaultRuntime returns the process-wide Runtime bound to api,
// creating it on first use. The first backend wins; all later Helpers
// share it regardless of the api they pass.
func DefaultRuntime(api com.API) *Runtime {
	defaultRuntimeMu.Lock()
	defer defaultRuntimeMu.Unlock()
	if defaultRuntime == nil {
		defaultRuntime = NewRuntime(api)
	}
	return defaultRuntime
}
