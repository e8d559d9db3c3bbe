package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotals_HasErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		totals Totals
		want   bool
	}{
		{
			name:   "clean document",
			totals: Totals{Nodes: 10, Leaves: 6},
			want:   false,
		},
		{
			name:   "has errors",
			totals: Totals{Nodes: 10, Errors: 2},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.totals.HasErrors())
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	assert.True(t, opts.IncludeErrors)
	assert.True(t, opts.IncludeByKind)
	assert.True(t, opts.IncludeLanguages)
	assert.Equal(t, SortByCount, opts.SortBy)
	assert.True(t, opts.SortDesc)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByCount.IsValid())
	assert.True(t, SortByAlpha.IsValid())
	assert.True(t, SortByBytes.IsValid())
	assert.False(t, SortField("invalid").IsValid())
}
