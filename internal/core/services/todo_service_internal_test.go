package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 10},
		{"abc", 10},
		{"0", 10},
		{"-5", 1},
		{"3", 3},
		{" 4 ", 4},
		{"3abc", 3},
		{"+2", 2},
		{"99999999999999999999999", math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePositiveInt(tt.raw, 10))
		})
	}
}
