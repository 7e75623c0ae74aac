// Package pricing quotes registration prices for the controller.
package pricing

import (
	"math/big"

	"bicns/internal/controller/models"
	"bicns/pkg/domain"
)

// Linear charges a per-second rate picked by label length. Premium is always zero.
type Linear struct {
	rates [3]*big.Int
}

// NewLinear returns an oracle charging ratePerSecond for every label length.
func NewLinear(ratePerSecond *big.Int) *Linear {
	return NewTiered(ratePerSecond, ratePerSecond, ratePerSecond)
}

// NewTiered sets separate rates for 3, 4 and 5+ grapheme labels.
func NewTiered(three, four, fivePlus *big.Int) *Linear {
	return &Linear{rates: [3]*big.Int{copyOrZero(three), copyOrZero(four), copyOrZero(fivePlus)}}
}

// Price returns duration * rate(len(label)).
func (l *Linear) Price(label string, duration uint64) models.Price {
	base := new(big.Int).SetUint64(duration)
	base.Mul(base, l.rate(domain.LabelLength(label)))
	return models.Price{Base: base, Premium: new(big.Int)}
}

func (l *Linear) rate(length int) *big.Int {
	switch {
	case length <= 3:
		return l.rates[0]
	case length == 4:
		return l.rates[1]
	default:
		return l.rates[2]
	}
}

func copyOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
