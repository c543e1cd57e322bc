package bookstore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"24.99", 2499},
		{"24.9", 2490},
		{"24", 2400},
		{"$5.05", 505},
		{" 0.01 ", 1},
		{".5", 50},
		{"7.", 700},
		{"-3.25", -325},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "1,50", "1e3", ".", "$", "--1", "1.-5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePrice(in)
			assert.Error(t, err)
		})
	}
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "74.97", Cents(7497).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "20.00", Cents(2000).String())
	assert.Equal(t, "-1.50", Cents(-150).String())
}

func TestParsePrice_OutOfRange(t *testing.T) {
	got, err := ParsePrice("92233720368547757.99")
	require.NoError(t, err)
	assert.Equal(t, Cents(9223372036854775799), got)

	for _, in := range []string{"92233720368547758", "184467440737095517", "99999999999999999999"} {
		_, err := ParsePrice(in)
		assert.Error(t, err, in)
	}
}

func TestCents_Times(t *testing.T) {
	total, err := MustParsePrice("24.99").Times(3)
	require.NoError(t, err)
	assert.Equal(t, Cents(7497), total)

	total, err = Cents(1999).Times(0)
	require.NoError(t, err)
	assert.Equal(t, Cents(0), total)

	_, err = Cents(2500).Times(7378697629483821)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Cents(math.MaxInt64).Times(2)
	assert.ErrorIs(t, err, ErrInvalid)
}
