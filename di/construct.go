package di

import "errors"

// ErrNilCtor is returned when a Construct helper is given a nil constructor.
var ErrNilCtor = errors.New("di: nil constructor")

// Construct1 builds a Service via constructor injection with one dependency.
//
// The dependency service must already be built; its value is passed to ctor
// at creation time and recorded in the new Service's Deps under keyA.
//
// It returns:
//   - ErrNilCtor if ctor is nil
//   - NilDependencyServiceError if a (or its Val) is nil
//   - ErrNilTarget if ctor returns nil
func Construct1[T any, A any](
	keyA DependencyKey, a *Service[A],
	ctor func(*A) *T,
) (*Service[T], error) {
	if ctor == nil {
		return nil, ErrNilCtor
	}
	if a == nil || a.Val == nil {
		return nil, NilDependencyServiceError{Key: keyA}
	}

	val := ctor(a.Val)
	if val == nil {
		return nil, ErrNilTarget
	}
	return &Service[T]{
		Val:  val,
		Deps: map[DependencyKey]any{keyA: a.Val},
	}, nil
}

// Construct2 builds a Service via constructor injection with two dependencies.
//
// Dependency keys must be distinct; reusing a key returns DuplicateKeyError.
func Construct2[T any, A any, B any](
	keyA DependencyKey, a *Service[A],
	keyB DependencyKey, b *Service[B],
	ctor func(*A, *B) *T,
) (*Service[T], error) {
	if ctor == nil {
		return nil, ErrNilCtor
	}
	if a == nil || a.Val == nil {
		return nil, NilDependencyServiceError{Key: keyA}
	}
	if b == nil || b.Val == nil {
		return nil, NilDependencyServiceError{Key: keyB}
	}
	if keyA == keyB {
		return nil, DuplicateKeyError{Key: keyB}
	}

	val := ctor(a.Val, b.Val)
	if val == nil {
		return nil, ErrNilTarget
	}
	return &Service[T]{
		Val:  val,
		Deps: map[DependencyKey]any{keyA: a.Val, keyB: b.Val},
	}, nil
}

// Construct3 builds a Service via constructor injection with three dependencies.
//
// Dependency keys must be distinct; the first repeated key is reported via
// DuplicateKeyError.
func Construct3[T any, A any, B any, C any](
	keyA DependencyKey, a *Service[A],
	keyB DependencyKey, b *Service[B],
	keyC DependencyKey, c *Service[C],
	ctor func(*A, *B, *C) *T,
) (*Service[T], error) {
	if ctor == nil {
		return nil, ErrNilCtor
	}
	if a == nil || a.Val == nil {
		return nil, NilDependencyServiceError{Key: keyA}
	}
	if b == nil || b.Val == nil {
		return nil, NilDependencyServiceError{Key: keyB}
	}
	if c == nil || c.Val == nil {
		return nil, NilDependencyServiceError{Key: keyC}
	}
	if keyA == keyB {
		return nil, DuplicateKeyError{Key: keyB}
	}
	if keyA == keyC || keyB == keyC {
		return nil, DuplicateKeyError{Key: keyC}
	}

	val := ctor(a.Val, b.Val, c.Val)
	if val == nil {
		return nil, ErrNilTarget
	}
	return &Service[T]{
		Val:  val,
		Deps: map[DependencyKey]any{keyA: a.Val, keyB: b.Val, keyC: c.Val},
	}, nil
}

// MustConstruct1 is Construct1 that panics on wiring errors.
//
// Useful in composition roots where wiring failures are not user-recoverable.
func MustConstruct1[T any, A any](
	keyA DependencyKey, a *Service[A],
	ctor func(*A) *T,
) *Service[T] {
	s, err := Construct1(keyA, a, ctor)
	if err != nil {
		panic(err)
	}
	return s
}

// MustConstruct2 is Construct2 that panics on wiring errors.
func MustConstruct2[T any, A any, B any](
	keyA DependencyKey, a *Service[A],
	keyB DependencyKey, b *Service[B],
	ctor func(*A, *B) *T,
) *Service[T] {
	s, err := Construct2(keyA, a, keyB, b, ctor)
	if err != nil {
		panic(err)
	}
	return s
}

// MustConstruct3 is Construct3 that panics on wiring errors.
func MustConstruct3[T any, A any, B any, C any](
	keyA DependencyKey, a *Service[A],
	keyB DependencyKey, b *Service[B],
	keyC DependencyKey, c *Service[C],
	ctor func(*A, *B, *C) *T,
) *Service[T] {
	s, err := Construct3(keyA, a, keyB, b, keyC, c, ctor)
	if err != nil {
		panic(err)
	}
	return s
}
