package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	s := Scale(10)

	assert.Equal(t, 1024, s.Unit())
	assert.Equal(t, 1023, s.Mask())

	// Conversion truncates toward zero, matching integer phase arithmetic.
	assert.Equal(t, 1024, s.FromFloat(1.0))
	assert.Equal(t, 20525, s.FromFloat(20.0443))
	assert.Equal(t, 0, s.FromFloat(0.0009))
}

func TestQuantizeUQ16(t *testing.T) {
	testCases := []struct {
		name    string
		x       float64
		want    UQ16
		wantErr bool
	}{
		{"zero", 0.0, 0, false},
		{"rounds_down", 100.4, 100, false},
		{"rounds_up", 100.5, 101, false},
		{"max", 65535.4, 65535, false},
		{"just_below_zero", -0.4, 0, false},
		{"negative", -1.0, 0, true},
		{"overflow", 65536.0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := QuantizeUQ16(tc.x)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
