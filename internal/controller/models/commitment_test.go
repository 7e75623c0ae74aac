package models

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resolvermodels "bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
)

func baseParams() RegisterParams {
	return RegisterParams{
		Label:    "newname",
		Owner:    common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		Duration: MinRegistrationDuration,
		Secret:   common.HexToHash("0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
	}
}

func TestCommitmentBindsEveryParameter(t *testing.T) {
	p := baseParams()
	base, err := p.Commitment()
	require.NoError(t, err)

	again, err := p.Commitment()
	require.NoError(t, err)
	assert.Equal(t, base, again, "commitment must be deterministic")

	mutations := map[string]func(*RegisterParams){
		"label":    func(p *RegisterParams) { p.Label = "othername" },
		"owner":    func(p *RegisterParams) { p.Owner = common.HexToAddress("0x00000000000000000000000000000000000000b2") },
		"duration": func(p *RegisterParams) { p.Duration++ },
		"secret":   func(p *RegisterParams) { p.Secret = common.Hash{} },
		"resolver": func(p *RegisterParams) { p.Resolver = common.HexToAddress("0x00000000000000000000000000000000000000c3") },
		"data": func(p *RegisterParams) {
			p.Data = []resolvermodels.RecordWrite{{Kind: resolvermodels.KindText, Key: "url", Value: "x"}}
		},
		"wrap":   func(p *RegisterParams) { p.WrapOwner = true },
		"fuses":  func(p *RegisterParams) { p.Fuses = 1 },
		"expiry": func(p *RegisterParams) { p.WrapperExpiry = 5 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			changed := baseParams()
			mutate(&changed)
			got, err := changed.Commitment()
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}
}

func TestRegisterParamsValidate(t *testing.T) {
	t.Run("short label", func(t *testing.T) {
		p := baseParams()
		p.Label = "ab"
		assert.True(t, dErrors.HasCode(p.Validate(), dErrors.CodeValidation))
	})

	t.Run("data without resolver", func(t *testing.T) {
		p := baseParams()
		p.Data = []resolvermodels.RecordWrite{{Kind: resolvermodels.KindName, Value: "newname.bic"}}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolver required")
	})

	t.Run("valid", func(t *testing.T) {
		p := baseParams()
		assert.NoError(t, p.Validate())
	})
}

func TestCommitmentWindow(t *testing.T) {
	c := Commitment{Timestamp: 1000}

	assert.True(t, dErrors.HasCode(c.CheckRevealable(1599, 600, 86400), dErrors.CodeCommitmentTooNew))
	assert.NoError(t, c.CheckRevealable(1600, 600, 86400))
	assert.NoError(t, c.CheckRevealable(87400, 600, 86400))
	assert.True(t, dErrors.HasCode(c.CheckRevealable(87401, 600, 86400), dErrors.CodeCommitmentTooOld))

	assert.True(t, c.Pending(87400, 86400))
	assert.False(t, c.Pending(87401, 86400))
}

func TestPriceTotal(t *testing.T) {
	assert.Equal(t, big.NewInt(0), Price{}.Total())
	assert.Equal(t, big.NewInt(15), Price{Base: big.NewInt(10), Premium: big.NewInt(5)}.Total())
}
