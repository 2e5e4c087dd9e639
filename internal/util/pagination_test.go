package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      int
		size      int
		wantFrom  int
		wantLimit int
	}{
		{name: "defaults", page: 0, size: 0, wantFrom: 0, wantLimit: DefaultPageSize},
		{name: "negative size", page: 1, size: -5, wantFrom: 0, wantLimit: DefaultPageSize},
		{name: "first page", page: 1, size: 20, wantFrom: 0, wantLimit: 20},
		{name: "third page", page: 3, size: 20, wantFrom: 40, wantLimit: 20},
		{name: "at the cap", page: 1, size: 100, wantFrom: 0, wantLimit: 100},
		{name: "over the cap clamps", page: 2, size: 500, wantFrom: 100, wantLimit: MaxPageSize},
		{name: "page below one", page: -2, size: 10, wantFrom: 0, wantLimit: 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			from, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
