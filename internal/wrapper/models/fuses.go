package models

import (
	"math"
	"strings"
)

// Fuses is the irrevocable restriction bitmask of a wrapped name. A set bit is a
// "burned" fuse; bits are only ever added.
type Fuses uint32

const (
	CannotUnwrap Fuses = 1 << iota
	CannotBurnFuses
	CannotTransfer
	CannotSetResolver
	CannotSetTTL
	CannotCreateSubdomain
	ParentCannotControl

	CanDoEverything Fuses = 0
)

// MaxExpiry is the largest representable expiry; callers pass it to mean "as long
// as the parent allows".
const MaxExpiry uint64 = math.MaxUint64

// ownerControlled are the fuses a name's own owner may burn. ParentCannotControl
// is granted from above only.
const ownerControlled = CannotUnwrap | CannotBurnFuses | CannotTransfer |
	CannotSetResolver | CannotSetTTL | CannotCreateSubdomain

// KnownFuses is every defined bit.
const KnownFuses = ownerControlled | ParentCannotControl

var fuseNames = []struct {
	fuse Fuses
	name string
}{
	{CannotUnwrap, "CANNOT_UNWRAP"},
	{CannotBurnFuses, "CANNOT_BURN_FUSES"},
	{CannotTransfer, "CANNOT_TRANSFER"},
	{CannotSetResolver, "CANNOT_SET_RESOLVER"},
	{CannotSetTTL, "CANNOT_SET_TTL"},
	{CannotCreateSubdomain, "CANNOT_CREATE_SUBDOMAIN"},
	{ParentCannotControl, "PARENT_CANNOT_CONTROL"},
}

// Has reports whether every bit of mask is burned.
func (f Fuses) Has(mask Fuses) bool {
	return f&mask == mask
}

// Any reports whether at least one bit of mask is burned.
func (f Fuses) Any(mask Fuses) bool {
	return f&mask != 0
}

// Burn OR-merges more into f. It never clears a bit.
func (f Fuses) Burn(more Fuses) Fuses {
	return f | more
}

// OwnerControlled reports whether every bit in f may be burned by the name owner.
func (f Fuses) OwnerControlled() bool {
	return f&^ownerControlled == 0
}

// Known reports whether f only uses defined bits.
func (f Fuses) Known() bool {
	return f&^KnownFuses == 0
}

// Settable reports whether a fuse set may exist on a name: burning anything besides
// ParentCannotControl requires both ParentCannotControl and CannotUnwrap, otherwise
// the owner (or the parent) could unwrap and shed the restriction.
func (f Fuses) Settable() bool {
	if f&^ParentCannotControl == 0 {
		return true
	}
	return f.Has(ParentCannotControl | CannotUnwrap)
}

// Names lists the burned fuses, for logs and metrics labels.
func (f Fuses) Names() []string {
	var out []string
	for _, fn := range fuseNames {
		if f.Has(fn.fuse) {
			out = append(out, fn.name)
		}
	}
	return out
}

func (f Fuses) String() string {
	if f == CanDoEverything {
		return "CAN_DO_EVERYTHING"
	}
	return strings.Join(f.Names(), "|")
}
