package utils

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal_AcceptsFormattedStrings(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"20000", "20000"},
		{"20,000", "20000"},
		{"MMK 20,000", "20000"},
		{"MMK -20,000", "-20000"},
		{"  ks 1,234.50  ", "1234.5"},
		{"R$ 150", "150"},
	}
	for _, tc := range cases {
		d, err := ParseDecimal(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.expected, d.String(), tc.in)
	}
}

func TestParseDecimal_Rejects(t *testing.T) {
	for _, in := range []any{"", "MMK", "abc", true} {
		_, err := ParseDecimal(in)
		require.Error(t, err, "%v", in)
	}
}

func TestParseDecimal_NonStrings(t *testing.T) {
	d, err := ParseDecimal(json.Number("12.25"))
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("12.25")))

	d, err = ParseDecimal(7)
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.NewFromInt(7)))
}
