package di

import "errors"

// ErrNilCall is returned when Call or Apply receives a nil function.
var ErrNilCall = errors.New("di: nil call function")

// Call performs method injection: it supplies a collaborator to fn for a
// single operation and does NOT record it in the target's Deps bag.
//
// Use Call when the dependency varies per operation (e.g. choosing between
// providers call by call) or when the consumer should not retain it.
//
// It returns the zero value of R together with:
//   - ErrNilTarget if s (or its Val) is nil
//   - NilDependencyServiceError if dep (or its Val) is nil
//   - ErrNilCall if fn is nil
//
// Otherwise it returns whatever fn returns.
func Call[T any, D any, R any](
	s *Service[T],
	key DependencyKey,
	dep *Service[D],
	fn func(target *T, dependency *D) (R, error),
) (R, error) {
	var zero R
	if s == nil || s.Val == nil {
		return zero, ErrNilTarget
	}
	if dep == nil || dep.Val == nil {
		return zero, NilDependencyServiceError{Key: key}
	}
	if fn == nil {
		return zero, ErrNilCall
	}
	return fn(s.Val, dep.Val)
}

// Apply is Call without a result: it supplies a collaborator for a single
// operation that only reports an error.
//
// Like Call, the dependency is scoped to this invocation and leaves no trace
// in the target's Deps.
func Apply[T any, D any](
	s *Service[T],
	key DependencyKey,
	dep *Service[D],
	fn func(target *T, dependency *D) error,
) error {
	if s == nil || s.Val == nil {
		return ErrNilTarget
	}
	if dep == nil || dep.Val == nil {
		return NilDependencyServiceError{Key: key}
	}
	if fn == nil {
		return ErrNilCall
	}
	return fn(s.Val, dep.Val)
}
