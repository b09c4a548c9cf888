package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"42", 42, true},
		{"12abc", 12, true},
		{"7.9", 7, true},
		{"-3", -3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := leadingInt(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
