package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		number, limit int
		want          Page
		wantOffset    int
	}{
		{"defaults", 0, 0, Page{Number: 1, Limit: DefaultPageSize}, 0},
		{"second page", 2, 10, Page{Number: 2, Limit: 10}, 10},
		{"limit clamped", 1, 1000, Page{Number: 1, Limit: MaxPageSize}, 0},
		{"huge page clamped", 1 << 62, 20, Page{Number: MaxPageNumber, Limit: 20}, (MaxPageNumber - 1) * 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPage(tt.number, tt.limit)
			require.Equal(t, tt.want, p)
			require.Equal(t, tt.wantOffset, p.Offset())
			require.GreaterOrEqual(t, p.Offset(), 0)
		})
	}

	require.Positive(t, NewPage(math.MaxInt, MaxPageSize).Offset())
}
