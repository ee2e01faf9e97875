package money

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Amount
		wantErr bool
	}{
		{name: "plain integer", raw: "1000", want: FromInt(1000)},
		{name: "thousands separators", raw: "1,234,567", want: FromInt(1234567)},
		{name: "currency symbol", raw: "$400,000", want: FromInt(400000)},
		{name: "australian currency prefix", raw: "A$100", want: FromInt(100)},
		{name: "parenthesized negative", raw: "(25,000)", want: FromInt(-25000)},
		{name: "parenthesized with symbol", raw: "($1,500)", want: FromInt(-1500)},
		{name: "minus sign", raw: "-300", want: FromInt(-300)},
		{name: "minus inside parens cancels", raw: "(-300)", want: FromInt(300)},
		{name: "empty is absent", raw: "", want: Absent()},
		{name: "dash is absent", raw: "-", want: Absent()},
		{name: "en dash is absent", raw: "–", want: Absent()},
		{name: "n/a is absent", raw: "n/a", want: Absent()},
		{name: "nil is absent", raw: "Nil", want: Absent()},
		{name: "whitespace only is absent", raw: "   ", want: Absent()},
		{name: "fraction rounds up", raw: "10.5", want: FromInt(11)},
		{name: "fraction rounds down", raw: "10.4", want: FromInt(10)},
		{name: "negative fraction rounds away from zero", raw: "(10.5)", want: FromInt(-11)},
		{name: "leading and trailing space", raw: "  $2,000  ", want: FromInt(2000)},
		{name: "zero is present", raw: "0", want: FromInt(0)},
		{name: "stray annotation fails", raw: "see note 4", wantErr: true},
		{name: "bare symbol fails", raw: "$", wantErr: true},
		{name: "mixed garbage fails", raw: "12abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var nerr *NormalizationError
				require.True(t, errors.As(err, &nerr))
				assert.Equal(t, tt.raw, nerr.Raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeFloat(t *testing.T) {
	got, err := NormalizeFloat(1234.5)
	require.NoError(t, err)
	assert.Equal(t, FromInt(1235), got)

	got, err = NormalizeFloat(-1234.5)
	require.NoError(t, err)
	assert.Equal(t, FromInt(-1235), got)

	_, err = NormalizeFloat(mathNaN())
	assert.Error(t, err)
}

func mathNaN() float64 {
	var zero float64
	return zero / zero
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,000,000", Format(FromInt(1000000)))
	assert.Equal(t, "($25,000)", Format(FromInt(-25000)))
	assert.Equal(t, "$0", Format(FromInt(0)))
	assert.Equal(t, "$999", Format(FromInt(999)))
	assert.Equal(t, "$1,000", Format(FromInt(1000)))
	assert.Equal(t, "-", Format(Absent()))
}

// Normalize(Format(x)) must reproduce x exactly for every representable
// value, including negatives and separator-heavy magnitudes.
func TestFormatRoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 9, 10, 99, 100, 999, 1000, 1001,
		12345, -12345, 999999, 1000000, -1000000,
		599999, 600000, 1789000, -1789000,
		123456789012, -123456789012,
		9007199254740993, -9007199254740993,
		123456789012345678, -123456789012345678,
		math.MaxInt64, math.MinInt64 + 1,
	}
	for _, v := range values {
		got, err := Normalize(Format(FromInt(v)))
		require.NoError(t, err, "value %d", v)
		assert.Equal(t, FromInt(v), got, "value %d", v)
	}
}

func TestAmountHelpers(t *testing.T) {
	assert.Equal(t, int64(7), Absent().Or(7))
	assert.Equal(t, int64(3), FromInt(3).Or(7))
	assert.True(t, FromInt(0).IsZero())
	assert.False(t, Absent().IsZero())
	assert.False(t, FromInt(1).IsZero())
}
