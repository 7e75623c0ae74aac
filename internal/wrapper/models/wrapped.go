package models

import (
	"github.com/ethereum/go-ethereum/common"

	dErrors "bicns/pkg/domain-errors"
)

// WrappedName is the wrapper's ownership token for one node.
//
// Invariants:
//   - Fuses only gain bits while the name is unexpired; see Fuses.Burn.
//   - Expiry of a child never exceeds its parent's expiry; expiry of a bic
//     second-level name never exceeds the registrar lease.
//   - While Owner is non-zero the Registry owner of Node is the wrapper itself.
//
// # Expiry
//
// Expiry supersedes fuses. Once Expiry < now the name reads as having no fuses
// and, when ParentCannotControl had been burned, no owner either: the parent's
// protection lapsed together with the restrictions it granted.
//
// # Unwrap residue
//
// Unwrapping zeroes Owner but keeps the ParentCannotControl bit and Expiry, so a
// rewrap before expiry cannot be used to reset parent-granted protection.
type WrappedName struct {
	Node   common.Hash
	Name   []byte
	Owner  common.Address
	Fuses  Fuses
	Expiry uint64
}

// Expired reports whether the name is past its expiry at now.
func (w *WrappedName) Expired(now uint64) bool {
	return w.Expiry < now
}

// Data returns the effective (owner, fuses, expiry) at now. A nil record reads as
// unowned with no fuses.
func (w *WrappedName) Data(now uint64) (common.Address, Fuses, uint64) {
	if w == nil {
		return common.Address{}, CanDoEverything, 0
	}
	owner, fuses := w.Owner, w.Fuses
	if w.Expired(now) {
		if fuses.Has(ParentCannotControl) {
			owner = common.Address{}
		}
		fuses = CanDoEverything
	}
	return owner, fuses, w.Expiry
}

// EffectiveOwner is the owner component of Data.
func (w *WrappedName) EffectiveOwner(now uint64) common.Address {
	owner, _, _ := w.Data(now)
	return owner
}

// EffectiveFuses is the fuse component of Data.
func (w *WrappedName) EffectiveFuses(now uint64) Fuses {
	_, fuses, _ := w.Data(now)
	return fuses
}

// IsWrapped reports whether the token currently has a stored owner.
func (w *WrappedName) IsWrapped() bool {
	return w != nil && w.Owner != (common.Address{})
}

// CheckAllowed fails with OperationProhibited when any fuse in mask is in effect.
func (w *WrappedName) CheckAllowed(now uint64, mask Fuses) error {
	if w.EffectiveFuses(now).Any(mask) {
		return dErrors.Newf(dErrors.CodeOperationProhibited, "operation prohibited by %s", (w.EffectiveFuses(now) & mask).String())
	}
	return nil
}

// CanBurn validates burning more fuses at now and returns the merged set.
func (w *WrappedName) CanBurn(now uint64, more Fuses) (Fuses, error) {
	if !more.Known() {
		return 0, dErrors.New(dErrors.CodeValidation, "unknown fuse bits")
	}
	if !more.OwnerControlled() {
		return 0, dErrors.New(dErrors.CodeOperationProhibited, "PARENT_CANNOT_CONTROL can only be burned by the parent")
	}
	current := w.EffectiveFuses(now)
	if current.Has(CannotBurnFuses) {
		return 0, dErrors.New(dErrors.CodeOperationProhibited, "fuses are locked")
	}
	merged := current.Burn(more)
	if !merged.Settable() {
		return 0, dErrors.New(dErrors.CodeOperationProhibited, "burning fuses requires PARENT_CANNOT_CONTROL and CANNOT_UNWRAP")
	}
	return merged, nil
}

// ApplyUnwrap clears ownership and leaves the unwrap residue.
func (w *WrappedName) ApplyUnwrap() {
	w.Owner = common.Address{}
	w.Fuses &= ParentCannotControl
}

// Rewrap computes the fuses and expiry of a fresh mint over this record at now.
// Unexpired residue contributes its ParentCannotControl bit and its expiry.
func (w *WrappedName) Rewrap(now uint64, fuses Fuses, expiry uint64) (Fuses, uint64) {
	if w == nil {
		return fuses, expiry
	}
	if w.Expiry > expiry {
		expiry = w.Expiry
	}
	if !w.Expired(now) {
		fuses |= w.Fuses & ParentCannotControl
	}
	return fuses, expiry
}

// NormaliseExpiry clamps a requested expiry to [previous, max].
func NormaliseExpiry(expiry, previous, max uint64) uint64 {
	if expiry > max {
		expiry = max
	}
	if expiry < previous {
		expiry = previous
	}
	return expiry
}
