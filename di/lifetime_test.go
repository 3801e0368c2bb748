package di_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhaddad/knot/di"
)

func TestLifetimeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "singleton", di.Singleton.String())
	assert.Equal(t, "transient", di.Transient.String())
	assert.Equal(t, "unknown", di.Lifetime(42).String())
}

func TestNewProvider_NilBuild(t *testing.T) {
	t.Parallel()

	_, err := di.NewProvider[userStore](di.Singleton, nil)
	require.True(t, errors.Is(err, di.ErrNilBuild))

	assert.Panics(t, func() {
		_ = di.MustProvider[userStore](di.Singleton, nil)
	})
}

func TestSingleton_BuildsOnceAndShares(t *testing.T) {
	t.Parallel()

	var builds int32
	p := di.MustProvider(di.Singleton, func() *userStore {
		atomic.AddInt32(&builds, 1)
		return &userStore{DSN: "postgres://"}
	})
	assert.Equal(t, di.Singleton, p.Lifetime())

	first, err := p.Resolve()
	require.NoError(t, err)
	second, err := p.Resolve()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
}

func TestSingleton_ConcurrentResolveBuildsOnce(t *testing.T) {
	t.Parallel()

	var builds int32
	p := di.MustProvider(di.Singleton, func() *userStore {
		atomic.AddInt32(&builds, 1)
		return &userStore{}
	})

	const n = 32
	got := make([]*userStore, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			got[i] = p.MustResolve()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
	for i := 1; i < n; i++ {
		assert.Same(t, got[0], got[i])
	}
}

func TestTransient_BuildsPerResolve(t *testing.T) {
	t.Parallel()

	var builds int32
	p := di.MustProvider(di.Transient, func() *userStore {
		atomic.AddInt32(&builds, 1)
		return &userStore{}
	})

	first, err := p.Resolve()
	require.NoError(t, err)
	second, err := p.Resolve()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&builds))
}

func TestProvider_NilInstance(t *testing.T) {
	t.Parallel()

	pt := di.MustProvider(di.Transient, func() *userStore { return nil })
	_, err := pt.Resolve()
	require.True(t, errors.Is(err, di.ErrNilInstance))

	// a nil singleton build is not cached: a later good build would still run,
	// but here the provider keeps failing deterministically
	ps := di.MustProvider(di.Singleton, func() *userStore { return nil })
	_, err = ps.Resolve()
	require.True(t, errors.Is(err, di.ErrNilInstance))
	_, err = ps.Resolve()
	require.True(t, errors.Is(err, di.ErrNilInstance))

	assert.Panics(t, func() { _ = ps.MustResolve() })
}

func TestAsService_AdaptsIntoWiring(t *testing.T) {
	t.Parallel()

	p := di.MustProvider(di.Singleton, func() *userStore { return &userStore{DSN: "sqlite"} })

	storeSvc, err := p.AsService()
	require.NoError(t, err)
	require.NotNil(t, storeSvc.Value())
	require.NotNil(t, storeSvc.Deps)

	user := di.Init(func() *userLogic { return &userLogic{} })
	_, err = user.With(di.Setting(storeKey, storeSvc, func(u *userLogic, s *userStore) { u.Store = s }))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", user.Value().Store.DSN)

	// singleton: a second adaptation sees the same instance
	again, err := p.AsService()
	require.NoError(t, err)
	assert.Same(t, storeSvc.Value(), again.Value())

	// failing provider propagates the error
	bad := di.MustProvider(di.Transient, func() *userStore { return nil })
	_, err = bad.AsService()
	require.True(t, errors.Is(err, di.ErrNilInstance))
}
