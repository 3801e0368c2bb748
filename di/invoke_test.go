package di_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhaddad/knot/di"
)

func TestCall_SuppliesDependencyForSingleInvocation(t *testing.T) {
	t.Parallel()

	mail := newMailSvc()
	user := di.Init(func() *userLogic { return &userLogic{} })

	host, err := di.Call(user, mailKey, mail, func(u *userLogic, m *mailClient) (string, error) {
		return m.Host, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.local", host)

	// the consumer did not retain the collaborator
	assert.Nil(t, user.Value().Mail)
	// and nothing was recorded in the bag
	assert.False(t, user.Has(mailKey))
	assert.Empty(t, user.Deps)
}

func TestCall_PropagatesFnError(t *testing.T) {
	t.Parallel()

	mail := newMailSvc()
	user := di.Init(func() *userLogic { return &userLogic{} })

	sendErr := fmt.Errorf("smtp: connection refused")
	_, err := di.Call(user, mailKey, mail, func(*userLogic, *mailClient) (string, error) {
		return "", sendErr
	})
	require.ErrorIs(t, err, sendErr)
}

func TestCall_Errors(t *testing.T) {
	t.Parallel()

	mail := newMailSvc()
	user := di.Init(func() *userLogic { return &userLogic{} })
	okFn := func(*userLogic, *mailClient) (string, error) { return "", nil }

	// nil target service
	_, err := di.Call(nil, mailKey, mail, okFn)
	require.True(t, errors.Is(err, di.ErrNilTarget))

	// nil target value
	_, err = di.Call(&di.Service[userLogic]{}, mailKey, mail, okFn)
	require.True(t, errors.Is(err, di.ErrNilTarget))

	// nil dependency service
	_, err = di.Call(user, mailKey, (*di.Service[mailClient])(nil), okFn)
	var nde di.NilDependencyServiceError
	require.True(t, errors.As(err, &nde))
	assert.Equal(t, mailKey, nde.Key)

	// nil dependency value
	_, err = di.Call(user, mailKey, &di.Service[mailClient]{}, okFn)
	require.True(t, errors.As(err, &nde))

	// nil fn
	_, err = di.Call[userLogic, mailClient, string](user, mailKey, mail, nil)
	require.True(t, errors.Is(err, di.ErrNilCall))
}

func TestApply_SuccessAndErrors(t *testing.T) {
	t.Parallel()

	mail := newMailSvc()
	user := di.Init(func() *userLogic { return &userLogic{} })

	var delivered string
	err := di.Apply(user, mailKey, mail, func(u *userLogic, m *mailClient) error {
		delivered = m.Host
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.local", delivered)
	assert.Empty(t, user.Deps)

	// guard branches mirror Call
	err = di.Apply(nil, mailKey, mail, func(*userLogic, *mailClient) error { return nil })
	require.True(t, errors.Is(err, di.ErrNilTarget))

	err = di.Apply(user, mailKey, (*di.Service[mailClient])(nil), func(*userLogic, *mailClient) error { return nil })
	var nde di.NilDependencyServiceError
	require.True(t, errors.As(err, &nde))

	err = di.Apply[userLogic, mailClient](user, mailKey, mail, nil)
	require.True(t, errors.Is(err, di.ErrNilCall))
}

// A consumer can receive a different collaborator on every call.
func TestCall_DifferentDependencyPerCall(t *testing.T) {
	t.Parallel()

	user := di.Init(func() *userLogic { return &userLogic{} })
	smtp := di.Init(func() *mailClient { return &mailClient{Host: "smtp.local"} })
	relay := di.Init(func() *mailClient { return &mailClient{Host: "relay.local"} })

	via := func(dep *di.Service[mailClient]) string {
		host, err := di.Call(user, mailKey, dep, func(u *userLogic, m *mailClient) (string, error) {
			return m.Host, nil
		})
		require.NoError(t, err)
		return host
	}

	assert.Equal(t, "smtp.local", via(smtp))
	assert.Equal(t, "relay.local", via(relay))
}
