package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyWritePrimaryFailureAborts(t *testing.T) {
	primaryErr := errors.New("primary down")
	secondaryCalled := false

	_, err := applyWrite(context.Background(), "test.op",
		func(ctx context.Context) (int, error) {
			return 0, primaryErr
		},
		func(ctx context.Context, _ int) error {
			secondaryCalled = true
			return nil
		})

	require.ErrorIs(t, err, primaryErr)
	require.False(t, secondaryCalled, "secondary must not run when primary fails")
}

func TestApplyWriteSecondaryFailureSwallowed(t *testing.T) {
	result, err := applyWrite(context.Background(), "test.op",
		func(ctx context.Context) (int, error) {
			return 42, nil
		},
		func(ctx context.Context, _ int) error {
			return errors.New("index unavailable")
		})

	require.NoError(t, err)
	require.Equal(t, 42, result)
}
