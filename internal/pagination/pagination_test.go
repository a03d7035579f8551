package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page    int
		want    int
		wantErr error
	}{
		{page: 1, want: 0},
		{page: 2, want: 15},
		{page: 4, want: 45},
		{page: 0, wantErr: ErrInvalidPage},
		{page: -3, wantErr: ErrInvalidPage},
		{page: MaxPage, want: (MaxPage - 1) * PageSize},
		{page: MaxPage + 1, wantErr: ErrInvalidPage},
		{page: math.MaxInt, wantErr: ErrInvalidPage},
	}

	for _, tt := range tests {
		got, err := Offset(tt.page)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "page %d", tt.page)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "page %d", tt.page)
	}
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		wantItems int
		wantMore  int
	}{
		{name: "fewer than a page", rows: 10, wantItems: 10, wantMore: 0},
		{name: "exactly one page", rows: 15, wantItems: 15, wantMore: 0},
		{name: "one row over a page", rows: 16, wantItems: 15, wantMore: 1},
		{name: "two full pages", rows: 30, wantItems: 15, wantMore: 1},
		{name: "saturated fetch", rows: FetchCap, wantItems: 15, wantMore: 3},
		{name: "single row", rows: 1, wantItems: 1, wantMore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := seq(tt.rows)
			w, err := Slice(rows)
			require.NoError(t, err)
			assert.Len(t, w.Items, tt.wantItems)
			assert.Equal(t, tt.wantMore, w.More)
			assert.Equal(t, rows[:tt.wantItems], w.Items)
		})
	}
}

func TestSlice_Empty(t *testing.T) {
	_, err := Slice([]int{})
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Slice[string](nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestSlice_Deterministic(t *testing.T) {
	rows := seq(40)
	a, err := Slice(rows)
	require.NoError(t, err)
	b, err := Slice(rows)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
