package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VS237/momshop/internal/domain/catalog"
)

func TestTxError(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name        string
		err         error
		wantPersist bool
	}{
		{name: "nil", err: nil},
		{name: "business error passes through", err: ErrOutOfStock},
		{name: "wrapped domain error passes through", err: fmt.Errorf("save: %w", catalog.ErrPriceBelowCost)},
		{name: "existing persistence error kept", err: &PersistenceError{Op: "inner", Err: boom}, wantPersist: true},
		{name: "infrastructure error wrapped", err: boom, wantPersist: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := txError("op", tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.err)
			var pe *PersistenceError
			assert.Equal(t, tt.wantPersist, errors.As(got, &pe))
		})
	}
}

func TestIsBusinessError(t *testing.T) {
	assert.True(t, IsBusinessError(ErrEmptyCart))
	assert.True(t, IsBusinessError(fmt.Errorf("x: %w", catalog.ErrProductInUse)))
	assert.False(t, IsBusinessError(errors.New("disk full")))
}
