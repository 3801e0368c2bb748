// Package di provides small, explicit dependency injection helpers.
//
// It models a constructed value (Val) plus a bag of recorded dependencies (Deps).
// Collaborators are supplied from outside the consumer in one of three styles:
//
//   - constructor injection: Construct1/Construct2/Construct3 pass built
//     dependencies into a constructor function (see construct.go)
//   - setter injection: Setting builds an Injector that assigns a dependency
//     after construction and records it under a key
//   - method injection: Call/Apply supply a collaborator for a single
//     operation without retaining it (see invoke.go)
//
// Design goals:
//   - Lightweight: small API surface, no container graph, no reflection for injection.
//   - Explicit wiring: the composition root decides what is supplied, and when.
//   - Safe defaults: detects duplicates and nil wiring mistakes early.
//   - Test-friendly: works well in unit tests and supports introspection via Deps.
//
// Notes on performance:
//   - The success path is dominated by a map write and a function call.
//   - Error paths avoid fmt.Errorf to keep failure handling inexpensive when used
//     for control flow (e.g. TryGetAs missing checks).
package di

import (
	"errors"
	"reflect"
	"strconv"
)

var (
	// ErrNilTarget is returned when an injector is applied to a nil service
	// or a service with a nil Val.
	ErrNilTarget = errors.New("di: nil target service")

	// ErrNilDep is returned when a helper receives a nil dependency service or
	// a dependency service with a nil Val. Helpers that know the key return the
	// more specific NilDependencyServiceError.
	ErrNilDep = errors.New("di: nil dependency service")

	// ErrNilBind is returned when an injector is created with a nil setter.
	// Helpers that know the key return the more specific NilBindError.
	ErrNilBind = errors.New("di: nil bind function")
)

// DependencyKey identifies a dependency stored in a Service's Deps bag.
//
// Keys are typically defined as package-level constants to avoid typos.
//
// Example:
//
//	const (
//	  KeyStore  di.DependencyKey = "store"
//	  KeyMailer di.DependencyKey = "mailer"
//	)
type DependencyKey string

// Key converts a string into a DependencyKey.
//
// This is a small convenience for defining keys (often as constants).
func Key(name string) DependencyKey { return DependencyKey(name) }

// DuplicateKeyError is returned when wiring attempts to record a dependency
// under a key that already exists in the target Service.
type DuplicateKeyError struct{ Key DependencyKey }

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	// Example: di: duplicate dependency key "mailer"
	return "di: duplicate dependency key " + strconv.Quote(string(e.Key))
}

// MissingDependencyError is returned when a dependency key is not present.
//
// It is used by TryGetAs to distinguish "missing" from "wrong type".
type MissingDependencyError struct{ Key DependencyKey }

// Error implements the error interface.
func (e MissingDependencyError) Error() string {
	// Example: di: dependency "mailer" missing
	return "di: dependency " + strconv.Quote(string(e.Key)) + " missing"
}

// WrongTypeDependencyError is returned when a dependency exists but is of a different type.
//
// It is used by TryGetAs when a key is present but the stored value is not *D.
type WrongTypeDependencyError struct {
	// Key is the dependency key requested.
	Key DependencyKey

	// GotType is reflect.TypeOf(raw).String() for the stored value.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeDependencyError) Error() string {
	// Example: di: dependency "mailer" has wrong type (*smtp.Client)
	return "di: dependency " + strconv.Quote(string(e.Key)) + " has wrong type (" + e.GotType + ")"
}

// NilDependencyServiceError indicates a nil dependency service for a specific key.
//
// This provides key context without using fmt.Errorf.
type NilDependencyServiceError struct{ Key DependencyKey }

// Error implements the error interface.
func (e NilDependencyServiceError) Error() string {
	// Example: di: nil dependency service for key "mailer"
	return "di: nil dependency service for key " + strconv.Quote(string(e.Key))
}

// NilBindError indicates a nil setter for a specific key.
//
// This provides key context without using fmt.Errorf.
type NilBindError struct{ Key DependencyKey }

// Error implements the error interface.
func (e NilBindError) Error() string {
	// Example: di: nil bind function for key "mailer"
	return "di: nil bind function for key " + strconv.Quote(string(e.Key))
}

// Service is a small DI wrapper around a concrete instance plus recorded deps.
//
// Val is the constructed value.
// Deps stores dependency pointers keyed by DependencyKey for introspection/debugging.
//
// The dependency bag is intentionally loose (map[DependencyKey]any) so you can attach
// any pointer type without restricting user code.
//
// Typed retrieval is available via GetAs / TryGetAs / MustGetAs.
type Service[T any] struct {
	Val  *T
	Deps map[DependencyKey]any
}

// Init constructs a Service by calling ctor and initializing the dependency bag.
//
// Use Init for dependency-free values; use Construct1..Construct3 when the value
// itself is built from other services (constructor injection).
func Init[T any](ctor func() *T) *Service[T] {
	return &Service[T]{Val: ctor(), Deps: make(map[DependencyKey]any)}
}

// Value returns the constructed value pointer.
func (s *Service[T]) Value() *T { return s.Val }

// Injector mutates a Service in-place and returns an error if wiring fails.
//
// Injectors are applied via (*Service[T]).With or WithAll.
type Injector[T any] func(*Service[T]) error

// With applies a single injector to the Service.
//
// If inj is nil, With is a no-op and returns (s, nil).
func (s *Service[T]) With(inj Injector[T]) (*Service[T], error) {
	if inj == nil {
		return s, nil
	}
	if err := inj(s); err != nil {
		return s, err
	}
	return s, nil
}

// WithAll applies multiple injectors in order.
//
// It stops at the first error and returns that error.
func (s *Service[T]) WithAll(deps ...Injector[T]) (*Service[T], error) {
	for _, inj := range deps {
		if _, err := s.With(inj); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Setting builds an Injector that supplies a dependency via setter injection.
//
// It records the dependency pointer in s.Deps[key], then calls set to assign
// the dependency on the target implementation (a field assignment or an
// exported setter).
//
// The returned injector fails if:
//   - the target service (or its Val) is nil (ErrNilTarget)
//   - the dependency service (or its Val) is nil (NilDependencyServiceError)
//   - set is nil (NilBindError)
//   - key already exists in the target's Deps (DuplicateKeyError)
func Setting[T any, D any](
	key DependencyKey,
	dep *Service[D],
	set func(target *T, dependency *D),
) Injector[T] {
	return func(s *Service[T]) error {
		if s == nil || s.Val == nil {
			return ErrNilTarget
		}
		if dep == nil || dep.Val == nil {
			return NilDependencyServiceError{Key: key}
		}
		if set == nil {
			return NilBindError{Key: key}
		}
		if s.Deps == nil {
			s.Deps = make(map[DependencyKey]any)
		}
		if _, exists := s.Deps[key]; exists {
			return DuplicateKeyError{Key: key}
		}

		d := dep.Val
		s.Deps[key] = d
		set(s.Val, d)
		return nil
	}
}

// Has reports whether a dependency exists for the key (regardless of type).
func (s *Service[T]) Has(key DependencyKey) bool {
	if s == nil || s.Deps == nil {
		return false
	}
	_, ok := s.Deps[key]
	return ok
}

// GetAny returns the raw stored dependency value without type assertions.
func (s *Service[T]) GetAny(key DependencyKey) (any, bool) {
	if s == nil || s.Deps == nil {
		return nil, false
	}
	v, ok := s.Deps[key]
	return v, ok
}

// GetAs returns the dependency typed as *D.
//
// ok is false if the key is missing or the stored value is not a *D.
func GetAs[T any, D any](s *Service[T], key DependencyKey) (*D, bool) {
	if s == nil || s.Deps == nil {
		return nil, false
	}
	raw, ok := s.Deps[key]
	if !ok || raw == nil {
		return nil, false
	}
	d, ok := raw.(*D)
	return d, ok
}

// TryGetAs returns the dependency typed as *D.
//
// It returns:
//   - MissingDependencyError if the key is not present
//   - WrongTypeDependencyError if the key exists but is not a *D
//
// It avoids fmt.Errorf so failure paths can be used in hot-ish code without
// paying formatting costs per call.
func TryGetAs[T any, D any](s *Service[T], key DependencyKey) (*D, error) {
	if s == nil || s.Deps == nil {
		return nil, MissingDependencyError{Key: key}
	}
	raw, ok := s.Deps[key]
	if !ok || raw == nil {
		return nil, MissingDependencyError{Key: key}
	}
	d, ok := raw.(*D)
	if !ok {
		return nil, WrongTypeDependencyError{
			Key:     key,
			GotType: reflect.TypeOf(raw).String(),
		}
	}
	return d, nil
}

// MustGetAs returns the dependency typed as *D or panics.
//
// It panics if the key is missing or the stored value is not a *D.
func MustGetAs[T any, D any](s *Service[T], key DependencyKey) *D {
	d, ok := GetAs[T, D](s, key)
	if !ok {
		panic(MissingDependencyError{Key: key})
	}
	return d
}

// Clone returns a shallow copy of the Service.
//
// The constructed value pointer (Val) is shared.
// The dependency bag (Deps) is copied into a new map so further wiring does not
// mutate the original Service's Deps.
func (s *Service[T]) Clone() *Service[T] {
	if s == nil {
		return nil
	}
	cp := &Service[T]{Val: s.Val}
	if len(s.Deps) > 0 {
		cp.Deps = make(map[DependencyKey]any, len(s.Deps))
		for k, v := range s.Deps {
			cp.Deps[k] = v
		}
	} else {
		cp.Deps = make(map[DependencyKey]any)
	}
	return cp
}
