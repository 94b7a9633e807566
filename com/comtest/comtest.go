// Package comtest provides a configurable in-memory implementation of
// the com boundary for tests and the wbemquery harness.
//
// A Service holds namespaces, classes, and ordered instances, and lets
// tests inject failures at every acquisition step and at any position
// inside an enumeration. It also counts every native handle it hands
// out, so tests can assert that no locator, services proxy,
// enumerator, object reference, or value survives the code path under
// test.
//
//	svc := comtest.NewService("ROOT/test")
//	cls := svc.Class("ROOT/test", "TestClass")
//	cls.Add(comtest.NewInstance(comtest.I32("Count", 1)))
//	cls.Fail(com.Timeout)
//	cls.Add(comtest.NewInstance(comtest.I32("Count", 2)))
//
//	helper, err := wbem.Connect(svc, "ROOT/test", ...)
//	...
//	if n := svc.Live(); n != 0 {
//	    t.Fatalf("leaked %d handles", n)
//	}
package comtest

import (
	"strings"
	"sync"
	"time"

	"github.com/coreidcc/go-wbemcore/com"
)

// Service is an in-memory management service implementing com.API.
// The zero value is not usable; construct with NewService.
type Service struct {
	// InitCode and SecurityCode control the two runtime
	// initialization steps. com.OK succeeds.
	InitCode     com.Code
	SecurityCode com.Code

	// LocatorCode, when failing, makes CreateLocator fail.
	LocatorCode com.Code

	// SubmitCode, when failing, makes every query and instance
	// enumeration submission fail with that code.
	SubmitCode com.Code

	mu         sync.Mutex
	namespaces map[string]map[string]*Class

	liveLocators  int
	liveServices  int
	liveEnums     int
	liveObjects   int
	liveValues    int
	runtimeInits  int
	runtimeStops  int
	securityInits int
}

// NewService builds a Service with the given namespaces registered.
func NewService(namespaces ...string) *Service {
	s := &Service{namespaces: make(map[string]map[string]*Class)}
	for _, ns := range namespaces {
		s.namespaces[ns] = make(map[string]*Class)
	}
	return s
}

// Class registers (or returns) a class in the given namespace.
func (s *Service) Class(namespace, name string) *Class {
	s.mu.Lock()
	defer s.mu.Unlock()
	classes, ok := s.namespaces[namespace]
	if !ok {
		classes = make(map[string]*Class)
		s.namespaces[namespace] = classes
	}
	cls, ok := classes[name]
	if !ok {
		cls = &Class{name: name, svc: s}
		classes[name] = cls
	}
	return cls
}

// Live returns the number of native handles currently held: locators,
// services proxies, enumerators, object references, and uncleared
// values. Zero after a clean shutdown.
func (s *Service) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveLocators + s.liveServices + s.liveEnums + s.liveObjects + s.liveValues
}

// LiveLocators returns the number of unreleased locator handles.
func (s *Service) LiveLocators() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveLocators
}

// LiveEnums returns the number of unreleased enumerator handles.
func (s *Service) LiveEnums() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveEnums
}

// LiveObjects returns the number of result objects with outstanding
// references.
func (s *Service) LiveObjects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveObjects
}

// RuntimeInits returns how often the runtime environment was
// initialized, and RuntimeStops how often it was shut down.
func (s *Service) RuntimeInits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtimeInits
}

// RuntimeStops returns the number of runtime shutdowns.
func (s *Service) RuntimeStops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtimeStops
}

// SecurityInits returns how often the security policy was applied.
func (s *Service) SecurityInits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.securityInits
}

// InitializeRuntime implements com.API.
func (s *Service) InitializeRuntime() com.Code {
	if s.InitCode.Failed() {
		return s.InitCode
	}
	s.mu.Lock()
	s.runtimeInits++
	s.mu.Unlock()
	return com.OK
}

// InitializeSecurity implements com.API.
func (s *Service) InitializeSecurity() com.Code {
	if s.SecurityCode.Failed() {
		return s.SecurityCode
	}
	s.mu.Lock()
	s.securityInits++
	s.mu.Unlock()
	return com.OK
}

// ShutdownRuntime implements com.API.
func (s *Service) ShutdownRuntime() {
	s.mu.Lock()
	s.runtimeStops++
	s.mu.Unlock()
}

// CreateLocator implements com.API.
func (s *Service) CreateLocator() (com.Locator, com.Code) {
	if s.LocatorCode.Failed() {
		return nil, s.LocatorCode
	}
	s.track(&s.liveLocators, 1)
	return &locator{svc: s}, com.OK
}

func (s *Service) track(counter *int, delta int) {
	s.mu.Lock()
	*counter += delta
	s.mu.Unlock()
}

type locator struct {
	svc      *Service
	released bool
}

func (l *locator) ConnectServer(namespace string) (com.Services, com.Code) {
	l.svc.mu.Lock()
	classes, ok := l.svc.namespaces[namespace]
	l.svc.mu.Unlock()
	if !ok {
		return nil, com.CodeInvalidNamespace
	}
	l.svc.track(&l.svc.liveServices, 1)
	return &services{svc: l.svc, classes: classes}, com.OK
}

func (l *locator) Release() {
	if l.released {
		return
	}
	l.released = true
	l.svc.track(&l.svc.liveLocators, -1)
}

type services struct {
	svc      *Service
	classes  map[string]*Class
	released bool
}

func (s *services) ExecQuery(language, query string, flags int) (com.Enumerator, com.Code) {
	if s.svc.SubmitCode.Failed() {
		return nil, s.svc.SubmitCode
	}
	if !strings.EqualFold(language, com.QueryLanguage) {
		return nil, com.CodeInvalidParameter
	}
	class, ok := classFromQuery(query)
	if !ok {
		return nil, com.CodeInvalidQuery
	}
	return s.enumerate(class)
}

func (s *services) CreateInstanceEnum(class string, flags int) (com.Enumerator, com.Code) {
	if s.svc.SubmitCode.Failed() {
		return nil, s.svc.SubmitCode
	}
	return s.enumerate(class)
}

// enumerate always hands out an enumerator; an unknown class yields
// one whose first advance fails. Submission being semi-synchronous,
// this is where such errors surface on the real service too.
func (s *services) enumerate(class string) (com.Enumerator, com.Code) {
	s.svc.track(&s.svc.liveEnums, 1)
	s.svc.mu.Lock()
	cls, ok := s.classes[class]
	s.svc.mu.Unlock()
	if !ok {
		return &enumerator{svc: s.svc, invalid: com.CodeInvalidClass}, com.OK
	}
	return &enumerator{svc: s.svc, steps: cls.snapshot()}, com.OK
}

func (s *services) Release() {
	if s.released {
		return
	}
	s.released = true
	s.svc.track(&s.svc.liveServices, -1)
}

// classFromQuery pulls the class name out of a SELECT query. The fake
// does not filter or project; it only needs the FROM target.
func classFromQuery(query string) (string, bool) {
	fields := strings.Fields(query)
	for i, f := range fields {
		if strings.EqualFold(f, "FROM") && i+1 < len(fields) {
			return fields[i+1], true
		}
	}
	return "", false
}

// step is one scripted enumeration outcome: either an instance or an
// injected status code.
type step struct {
	inst *Instance
	code com.Code
}

type enumerator struct {
	svc      *Service
	steps    []step
	pos      int
	invalid  com.Code
	released bool
}

func (e *enumerator) Next(timeout time.Duration) (com.Object, com.Code) {
	if e.invalid != com.OK {
		code := e.invalid
		// Surface the deferred submission error once, then behave
		// as exhausted.
		e.invalid = com.OK
		e.steps = nil
		return nil, code
	}
	if e.pos >= len(e.steps) {
		return nil, com.False
	}
	st := e.steps[e.pos]
	e.pos++
	if st.inst == nil {
		return nil, st.code
	}
	e.svc.track(&e.svc.liveObjects, 1)
	return &object{svc: e.svc, inst: st.inst, refs: 1}, com.OK
}

func (e *enumerator) Release() {
	if e.released {
		return
	}
	e.released = true
	e.svc.track(&e.svc.liveEnums, -1)
}

type object struct {
	svc  *Service
	inst *Instance
	refs int
}

func (o *object) Get(name string) (com.Value, com.Code) {
	for _, p := range o.inst.props {
		if strings.EqualFold(p.Name, name) {
			o.svc.track(&o.svc.liveValues, 1)
			released := false
			return p.Value.WithRelease(func() {
				if !released {
					released = true
					o.svc.track(&o.svc.liveValues, -1)
				}
			}), com.OK
		}
	}
	return com.Value{}, com.CodeNotFound
}

func (o *object) Names(flags int) ([]string, com.Code) {
	names := make([]string, 0, len(o.inst.props))
	for _, p := range o.inst.props {
		if flags&com.NamesNonSystemOnly != 0 && strings.HasPrefix(p.Name, "__") {
			continue
		}
		names = append(names, p.Name)
	}
	return names, com.OK
}

func (o *object) AddRef() {
	o.svc.mu.Lock()
	o.refs++
	o.svc.mu.Unlock()
}

func (o *object) Release() {
	o.svc.mu.Lock()
	o.refs--
	last := o.refs == 0
	o.svc.mu.Unlock()
	if last {
		o.svc.track(&o.svc.liveObjects, -1)
	}
}
