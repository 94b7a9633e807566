package wbem

import (
	"errors"
	"sync"
	"testing"

	"github.com/coreidcc/go-wbemcore/com"
	"github.com/coreidcc/go-wbemcore/com/comtest"
)

func TestRuntimeInitializesOnce(t *testing.T) {
	svc := comtest.NewService("ROOT/test")
	rt := NewRuntime(svc)

	for i := 0; i < 3; i++ {
		if _, err := Connect(svc, "ROOT/test", WithRuntime(rt)); err != nil {
			t.Fatalf("Connect %d failed: %v", i, err)
		}
	}

	if got := svc.RuntimeInits(); got != 1 {
		t.Errorf("runtime initialized %d times, want 1", got)
	}
	if got := svc.SecurityInits(); got != 1 {
		t.Errorf("security initialized %d times, want 1", got)
	}
}

func TestRuntimeConcurrentEnsure(t *testing.T) {
	svc := comtest.NewService("ROOT/test")
	rt := NewRuntime(svc)

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			helper, err := Connect(svc, "ROOT/test", WithRuntime(rt))
			errs[i] = err
			if err == nil {
				helper.Close()
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("concurrent Connect %d failed: %v", i, err)
		}
	}
	if got := svc.RuntimeInits(); got != 1 {
		t.Errorf("runtime initialized %d times under contention, want 1", got)
	}
}

func TestRuntimeEnvironmentFailure(t *testing.T) {
	svc := comtest.NewService("ROOT/test")
	svc.InitCode = com.CodeFailed
	rt := NewRuntime(svc)

	_, err := Connect(svc, "ROOT/test", WithRuntime(rt))
	var initErr *InitializationError
	if !errors.As(err, &initErr) {
		t.Fatalf("Connect = %v, want InitializationError", err)
	}
	if initErr.Step != "runtime" {
		t.Errorf("Step = %q, want %q", initErr.Step, "runtime")
	}
}

func TestRuntimeSecurityFailureIsAtomic(t *testing.T) {
	svc := comtest.NewService("ROOT/test")
	svc.SecurityCode = com.CodeAccessDenied
	rt := NewRuntime(svc)

	_, err := Connect(svc, "ROOT/test", WithRuntime(rt))
	var initErr *InitializationError
	if !errors.As(err, &initErr) {
		t.Fatalf("Connect = %v, want InitializationError", err)
	}
	if initErr.Step != "security" {
		t.Errorf("Step = %q, want %q", initErr.Step, "security")
	}
	if initErr.Code != com.CodeAccessDenied {
		t.Errorf("Code = %s, want AccessDenied", initErr.Code)
	}

	// The environment set up in step one was rolled back.
	if got := svc.RuntimeStops(); got != 1 {
		t.Errorf("runtime shut down %d times, want 1 (rollback)", got)
	}

	// The failure is permanent: no Helper can be built afterwards,
	// and the initialization is not retried.
	_, err2 := Connect(svc, "ROOT/test", WithRuntime(rt))
	if !errors.Is(err2, err) && err2.Error() != err.Error() {
		t.Errorf("second Connect = %v, want the recorded %v", err2, err)
	}
	if got := svc.RuntimeInits(); got != 1 {
		t.Errorf("runtime initialization attempted %d times, want 1", got)
	}
}

func TestRuntimeShutdown(t *testing.T) {
	svc := comtest.NewService("ROOT/test")
	rt := NewRuntime(svc)

	helper, err := Connect(svc, "ROOT/test", WithRuntime(rt))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	helper.Close()

	rt.Shutdown()
	rt.Shutdown() // idempotent
	if got := svc.RuntimeStops(); got != 1 {
		t.Errorf("runtime shut down %d times, want 1", got)
	}
}

func TestRuntimeShutdownWithoutInit(t *testing.T) {
	svc := comtest.NewService("ROOT/test")
	rt := NewRuntime(svc)

	// Shutting down a runtime that never initialized must not touch
	// the native environment.
	rt.Shutdown()
	if got := svc.RuntimeStops(); got != 0 {
		t.Errorf("runtime shut down %d times without init, want 0", got)
	}
}
