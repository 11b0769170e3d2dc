package grant

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseDollars(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{in: "$12,500", want: "12500", valid: true},
		{in: " 7500.50 ", want: "7500.5", valid: true},
		{in: "0", want: "0", valid: true},
		{in: "", valid: false},
		{in: "TBD", valid: false},
		{in: "-100", valid: false},
		{in: "NaN", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDollars(tt.in)
			if !tt.valid {
				require.ErrorIs(t, err, ErrInvalidAmount)
				require.False(t, got.Valid())
				require.Equal(t, tt.in, got.Source())
				return
			}
			require.NoError(t, err)
			require.True(t, got.Valid())
			require.Equal(t, tt.want, got.Decimal().String())
		})
	}
}

func TestAmount_JSONKeepsInvalidValuesVerbatim(t *testing.T) {
	var rec struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
		D Amount `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1500, "b": "$2,000", "c": "pending", "d": null}`), &rec))

	require.True(t, rec.A.Valid())
	require.Equal(t, "$1,500", rec.A.String())
	require.True(t, rec.B.Valid())
	require.Equal(t, "$2,000", rec.B.String())
	require.False(t, rec.C.Valid())
	require.True(t, rec.C.Decimal().IsZero())
	require.False(t, rec.D.Valid())

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	require.JSONEq(t, `{"a": 1500, "b": 2000, "c": "pending", "d": null}`, string(out))
}

func TestAmount_MissingIsInvalid(t *testing.T) {
	var rec struct {
		Amount Amount `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &rec))
	require.False(t, rec.Amount.Valid())
	require.Equal(t, "<missing>", rec.Amount.String())
}

func TestFormatDollars(t *testing.T) {
	require.Equal(t, "1,500", FormatDollars(decimal.NewFromInt(1500)))
	require.Equal(t, "1,234,567", FormatDollars(decimal.NewFromInt(1234567)))
	require.Equal(t, "1,500.50", FormatDollars(decimal.RequireFromString("1500.5")))
	require.Equal(t, "0.07", FormatDollars(decimal.RequireFromString("0.07")))
	require.Equal(t, "0", FormatDollars(decimal.Zero))
	require.Equal(t, "$25,000", Dollars(25000).String())
}

func TestAmount_AddIsExact(t *testing.T) {
	a, err := ParseDollars("0.10")
	require.NoError(t, err)
	b, err := ParseDollars("0.20")
	require.NoError(t, err)

	sum := a.Add(b)
	out, err := json.Marshal(sum)
	require.NoError(t, err)
	require.Equal(t, "0.3", string(out))
	require.Equal(t, "$0.30", sum.String())

	require.Equal(t, "$0.10", a.Add(InvalidAmount("TBD")).String())
}
