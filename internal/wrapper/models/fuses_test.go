package models

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	dErrors "bicns/pkg/domain-errors"
)

func TestFusesSettable(t *testing.T) {
	cases := []struct {
		name  string
		fuses Fuses
		want  bool
	}{
		{"nothing burned", CanDoEverything, true},
		{"only parent control", ParentCannotControl, true},
		{"unwrap without parent control", CannotUnwrap, false},
		{"parent control and unwrap", ParentCannotControl | CannotUnwrap, true},
		{"transfer lock without unwrap", ParentCannotControl | CannotTransfer, false},
		{"full lock", KnownFuses, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fuses.Settable())
		})
	}
}

func TestFusesString(t *testing.T) {
	assert.Equal(t, "CAN_DO_EVERYTHING", CanDoEverything.String())
	assert.Equal(t, "CANNOT_UNWRAP|PARENT_CANNOT_CONTROL", (CannotUnwrap | ParentCannotControl).String())
}

func TestWrappedNameData(t *testing.T) {
	owner := common.HexToAddress("0x0000000000000000000000000000000000000abc")

	t.Run("unexpired name reads stored data", func(t *testing.T) {
		w := &WrappedName{Owner: owner, Fuses: ParentCannotControl | CannotUnwrap, Expiry: 100}
		gotOwner, gotFuses, gotExpiry := w.Data(100)
		assert.Equal(t, owner, gotOwner)
		assert.Equal(t, ParentCannotControl|CannotUnwrap, gotFuses)
		assert.Equal(t, uint64(100), gotExpiry)
	})

	t.Run("expired name loses fuses and protected owner", func(t *testing.T) {
		w := &WrappedName{Owner: owner, Fuses: ParentCannotControl | CannotUnwrap, Expiry: 100}
		gotOwner, gotFuses, _ := w.Data(101)
		assert.Equal(t, common.Address{}, gotOwner)
		assert.Equal(t, CanDoEverything, gotFuses)
	})

	t.Run("expired unprotected name keeps owner", func(t *testing.T) {
		w := &WrappedName{Owner: owner, Expiry: 100}
		assert.Equal(t, owner, w.EffectiveOwner(500))
	})

	t.Run("nil record", func(t *testing.T) {
		var w *WrappedName
		assert.Equal(t, common.Address{}, w.EffectiveOwner(1))
		assert.False(t, w.IsWrapped())
	})
}

func TestWrappedNameCanBurn(t *testing.T) {
	base := &WrappedName{Fuses: ParentCannotControl, Expiry: 1000}

	t.Run("burn requires unwrap lock", func(t *testing.T) {
		_, err := base.CanBurn(10, CannotTransfer)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOperationProhibited))
	})

	t.Run("burn with unwrap lock", func(t *testing.T) {
		merged, err := base.CanBurn(10, CannotUnwrap|CannotTransfer)
		require.NoError(t, err)
		assert.Equal(t, ParentCannotControl|CannotUnwrap|CannotTransfer, merged)
	})

	t.Run("owner cannot grant parent control", func(t *testing.T) {
		_, err := (&WrappedName{}).CanBurn(10, ParentCannotControl)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOperationProhibited))
	})

	t.Run("locked fuses", func(t *testing.T) {
		locked := &WrappedName{Fuses: ParentCannotControl | CannotUnwrap | CannotBurnFuses, Expiry: 1000}
		_, err := locked.CanBurn(10, CannotSetTTL)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOperationProhibited))
	})

	t.Run("unknown bits", func(t *testing.T) {
		_, err := base.CanBurn(10, 1<<20)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestWrappedNameUnwrapAndRewrap(t *testing.T) {
	owner := common.HexToAddress("0x0000000000000000000000000000000000000abc")
	w := &WrappedName{Owner: owner, Fuses: ParentCannotControl | CannotUnwrap | CannotSetTTL, Expiry: 500}

	w.ApplyUnwrap()
	assert.False(t, w.IsWrapped())
	assert.Equal(t, ParentCannotControl, w.Fuses)
	assert.Equal(t, uint64(500), w.Expiry)

	fuses, expiry := w.Rewrap(100, CanDoEverything, 0)
	assert.Equal(t, ParentCannotControl, fuses)
	assert.Equal(t, uint64(500), expiry)

	fuses, expiry = w.Rewrap(501, CanDoEverything, 0)
	assert.Equal(t, CanDoEverything, fuses)
	assert.Equal(t, uint64(500), expiry)
}

func TestNormaliseExpiry(t *testing.T) {
	assert.Equal(t, uint64(50), NormaliseExpiry(MaxExpiry, 10, 50))
	assert.Equal(t, uint64(30), NormaliseExpiry(20, 30, 50))
	assert.Equal(t, uint64(40), NormaliseExpiry(40, 30, 50))
}

// Fuses observed through successive accepted burns never lose a bit.
func TestBurnIsMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := &WrappedName{
			Fuses:  ParentCannotControl,
			Expiry: rapid.Uint64Range(1, 1<<40).Draw(t, "expiry"),
		}
		now := rapid.Uint64Range(0, w.Expiry).Draw(t, "now")
		steps := rapid.IntRange(1, 12).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			before := w.EffectiveFuses(now)
			more := Fuses(rapid.Uint32Range(0, uint32(KnownFuses)).Draw(t, "more"))
			merged, err := w.CanBurn(now, more)
			if err == nil {
				w.Fuses = merged
			}
			after := w.EffectiveFuses(now)
			if !after.Has(before) {
				t.Fatalf("fuses lost bits: before=%s after=%s", before, after)
			}
			if !after.Settable() {
				t.Fatalf("reached unsettable fuse set %s", after)
			}
		}
	})
}
