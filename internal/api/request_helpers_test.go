package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{raw: "", want: 0},
		{raw: "3", want: 3},
		{raw: " 3", want: 3},
		{raw: "+4", want: 4},
		{raw: "2abc", want: 2},
		{raw: "-2", want: 2},
		{raw: "0", want: 0},
		{raw: "lots", want: 0},
		{raw: "-", want: 0},
		{raw: "99999999999999999999999", want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, parseLimit(tc.raw))
		})
	}
}
