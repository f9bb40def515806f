package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults applied", 0, 0, 20, 0},
		{"limit capped", 500, 0, 100, 0},
		{"negative offset reset", 10, -5, 10, 0},
		{"values kept", 50, 40, 50, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams(tt.limit, tt.offset, 20, 100)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Limit: 10, Offset: 0}, 25)
	assert.True(t, meta.HasMore)

	last := NewMeta(Params{Limit: 10, Offset: 20}, 25)
	assert.False(t, last.HasMore)
	assert.Equal(t, 25, last.Total)
}
