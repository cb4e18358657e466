package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_WrapsDriverErrors(t *testing.T) {
	err := Store("create account", errors.New("disk I/O error"))
	require.ErrorIs(t, err, ErrStore)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "create account", se.Op)
	require.Equal(t, "store: create account: disk I/O error", err.Error())
}

func TestStore_PassesThroughDomainErrors(t *testing.T) {
	require.NoError(t, Store("op", nil))
	require.Same(t, ErrNotFound, Store("op", ErrNotFound))

	wrapped := fmt.Errorf("account: %w", ErrAlreadyExists)
	require.Equal(t, wrapped, Store("op", wrapped))
	require.NotErrorIs(t, Store("op", wrapped), ErrStore)

	inner := Store("inner", errors.New("boom"))
	require.Same(t, inner, Store("outer", inner))
}

func TestStore_KeepsCause(t *testing.T) {
	err := Store("list", context.Canceled)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, ErrStore)
}
