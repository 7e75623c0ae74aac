package models

import (
	"math"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// GracePeriod is how long after expiry a label stays frozen: the stale owner can
// no longer transfer or reclaim it, and nobody else can register it yet.
const GracePeriod = uint64(90 * 24 * time.Hour / time.Second)

// Label is the registrar lease for keccak256(label) under the bic node.
// Labels are never deleted; an available label is re-leased in place.
type Label struct {
	Hash     common.Hash
	Owner    common.Address
	Approved common.Address
	Expiry   uint64
}

// Available reports whether the label can be (re-)registered at now.
// A nil label was never registered.
func (l *Label) Available(now uint64) bool {
	if l == nil {
		return true
	}
	return now > l.Expiry+GracePeriod
}

// Active reports whether the owner may still act on the lease.
func (l *Label) Active(now uint64) bool {
	return l != nil && now < l.Expiry
}

// Renewable reports whether a renewal is still accepted at now. The last second of
// the grace period is inclusive.
func (l *Label) Renewable(now uint64) bool {
	return l != nil && now <= l.Expiry+GracePeriod
}

// LeaseFits reports whether now+duration+GracePeriod stays inside uint64.
func LeaseFits(now, duration uint64) bool {
	return duration <= math.MaxUint64-GracePeriod-now
}
