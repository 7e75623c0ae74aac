package pricing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearPrice(t *testing.T) {
	oracle := NewTiered(big.NewInt(5), big.NewInt(3), big.NewInt(1))

	cases := []struct {
		name     string
		label    string
		duration uint64
		want     int64
	}{
		{"three graphemes", "abc", 10, 50},
		{"four graphemes", "abcd", 10, 30},
		{"long label", "newname", 10, 10},
		{"emoji counted as graphemes", "👩‍👩‍👧‍👦👩‍👩‍👧‍👦👩‍👩‍👧‍👦", 10, 50},
		{"zero duration", "newname", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price := oracle.Price(tc.label, tc.duration)
			assert.Equal(t, big.NewInt(tc.want).String(), price.Base.String())
			assert.Equal(t, "0", price.Premium.String())
			assert.Equal(t, big.NewInt(tc.want).String(), price.Total().String())
		})
	}
}

func TestLinearRateIsCopied(t *testing.T) {
	rate := big.NewInt(1)
	oracle := NewLinear(rate)
	rate.SetInt64(100)

	assert.Equal(t, "28", oracle.Price("newname", 28).Base.String())
}

func TestLinearPriceFullDuration(t *testing.T) {
	oracle := NewLinear(big.NewInt(1))
	const maxUint64 = ^uint64(0)
	assert.Equal(t, new(big.Int).SetUint64(maxUint64).String(), oracle.Price("newname", maxUint64).Base.String())
}
