package di

import (
	"errors"
	"sync"
)

// Lifetime controls how a Provider hands out instances.
type Lifetime int

const (
	// Singleton builds one instance on first Resolve and reuses it.
	Singleton Lifetime = iota

	// Transient builds a fresh instance on every Resolve.
	Transient
)

// String returns the lifetime name for logs and error messages.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

var (
	// ErrNilBuild is returned by NewProvider when the build function is nil.
	ErrNilBuild = errors.New("di: nil provider build function")

	// ErrNilInstance is returned when a build function produces nil.
	ErrNilInstance = errors.New("di: provider build returned nil instance")
)

// Provider inverts control over instance creation: consumers ask the provider
// for an instance instead of constructing one themselves. The lifetime decides
// whether they share a single instance or receive a fresh one per request.
//
// A Provider is safe for concurrent use.
type Provider[D any] struct {
	lifetime Lifetime
	build    func() *D

	mu     sync.Mutex
	cached *D
}

// NewProvider creates a Provider with the given lifetime and build function.
func NewProvider[D any](lifetime Lifetime, build func() *D) (*Provider[D], error) {
	if build == nil {
		return nil, ErrNilBuild
	}
	return &Provider[D]{lifetime: lifetime, build: build}, nil
}

// MustProvider is NewProvider that panics on a nil build function.
func MustProvider[D any](lifetime Lifetime, build func() *D) *Provider[D] {
	p, err := NewProvider(lifetime, build)
	if err != nil {
		panic(err)
	}
	return p
}

// Lifetime returns the provider's configured lifetime.
func (p *Provider[D]) Lifetime() Lifetime { return p.lifetime }

// Resolve returns an instance according to the provider's lifetime.
//
// Singleton providers call build exactly once, even under concurrent Resolve;
// Transient providers call build every time. A nil result from build is
// reported as ErrNilInstance (and, for singletons, is not cached).
func (p *Provider[D]) Resolve() (*D, error) {
	if p.lifetime == Transient {
		d := p.build()
		if d == nil {
			return nil, ErrNilInstance
		}
		return d, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached == nil {
		d := p.build()
		if d == nil {
			return nil, ErrNilInstance
		}
		p.cached = d
	}
	return p.cached, nil
}

// MustResolve is Resolve that panics on error.
func (p *Provider[D]) MustResolve() *D {
	d, err := p.Resolve()
	if err != nil {
		panic(err)
	}
	return d
}

// AsService adapts the provider into a *Service[D] so the resolved instance
// can participate in Setting/Construct/Call wiring.
func (p *Provider[D]) AsService() (*Service[D], error) {
	d, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	return &Service[D]{Val: d, Deps: make(map[DependencyKey]any)}, nil
}
