package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Add(t *testing.T) {
	tests := []struct {
		name    string
		adds    []Line
		want    []Line
		wantErr error
	}{
		{
			name: "new lines keep insertion order",
			adds: []Line{{ProductID: "b", Quantity: 1}, {ProductID: "a", Quantity: 2}},
			want: []Line{{ProductID: "b", Quantity: 1}, {ProductID: "a", Quantity: 2}},
		},
		{
			name: "same product accumulates",
			adds: []Line{{ProductID: "a", Quantity: 1}, {ProductID: "a", Quantity: 4}},
			want: []Line{{ProductID: "a", Quantity: 5}},
		},
		{
			name:    "zero quantity rejected",
			adds:    []Line{{ProductID: "a", Quantity: 0}},
			want:    []Line{},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "empty product rejected",
			adds:    []Line{{ProductID: "", Quantity: 1}},
			want:    []Line{},
			wantErr: ErrEmptyProductID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			var err error
			for _, l := range tt.adds {
				if err = c.Add(l.ProductID, l.Quantity); err != nil {
					break
				}
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, c.Lines)
		})
	}
}

func TestCart_UpdateNonPositiveRemoves(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("a", 2))
	require.NoError(t, c.Add("b", 3))

	require.NoError(t, c.Update("a", 0))
	assert.Equal(t, 0, c.Quantity("a"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Update("b", -4))
	assert.True(t, c.IsEmpty())
}

func TestCart_UpdateSetsQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("a", 2))
	require.NoError(t, c.Update("a", 7))
	require.NoError(t, c.Update("c", 1))

	assert.Equal(t, 7, c.Quantity("a"))
	assert.Equal(t, 8, c.Count())
	assert.Equal(t, []Line{{ProductID: "a", Quantity: 7}, {ProductID: "c", Quantity: 1}}, c.Lines)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("a", 1))
	require.NoError(t, c.Add("b", 1))

	c.Remove("missing")
	assert.Equal(t, 2, c.Len())

	c.Remove("a")
	assert.Equal(t, []Line{{ProductID: "b", Quantity: 1}}, c.Lines)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Count())
}
