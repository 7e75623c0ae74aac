package domain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bicns/pkg/domain-errors"
)

func TestNamehash(t *testing.T) {
	t.Run("empty name is the root", func(t *testing.T) {
		assert.Equal(t, RootNode, Namehash(""))
		assert.Equal(t, common.Hash{}, RootNode)
	})

	t.Run("known vectors", func(t *testing.T) {
		assert.Equal(t,
			common.HexToHash("0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"),
			Namehash("eth"))
		assert.Equal(t,
			common.HexToHash("0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"),
			Namehash("foo.eth"))
	})

	t.Run("keccak of empty input", func(t *testing.T) {
		assert.Equal(t,
			common.HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
			Keccak256())
	})

	t.Run("bic node is built from the root", func(t *testing.T) {
		assert.Equal(t, MakeNode(RootNode, HashLabel("bic")), BICNode)
		assert.Equal(t, Namehash("newname.bic"), BICSubnode("newname"))
	})
}

func TestSystemAddress(t *testing.T) {
	a := SystemAddress("registrar")
	b := SystemAddress("wrapper")
	assert.NotEqual(t, ZeroAddress, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, SystemAddress("registrar"))
}

// TestParse_Invariants covers the trust-boundary parsers used by every handler.
func TestParse_Invariants(t *testing.T) {
	t.Run("node requires 0x and 32 bytes", func(t *testing.T) {
		for _, in := range []string{"", "abc", "0x1234", "0x" + string(make([]byte, 64))} {
			_, err := ParseNode(in)
			require.Error(t, err, in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("root node parses", func(t *testing.T) {
		n, err := ParseNode("0x0000000000000000000000000000000000000000000000000000000000000000")
		require.NoError(t, err)
		assert.Equal(t, RootNode, n)
	})

	t.Run("label hash rejects zero", func(t *testing.T) {
		_, err := ParseLabelHash("0x0000000000000000000000000000000000000000000000000000000000000000")
		require.Error(t, err)
	})

	t.Run("address round-trips", func(t *testing.T) {
		addr, err := ParseAddress("0x00000000000000000000000000000000000000aa")
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xaa"), addr)
	})

	t.Run("address rejects garbage", func(t *testing.T) {
		_, err := ParseAddress("0xnothex")
		require.Error(t, err)
		_, err = ParseAddress("00000000000000000000000000000000000000aa")
		require.Error(t, err)
	})

	t.Run("optional address maps empty to zero", func(t *testing.T) {
		addr, err := ParseOptionalAddress("")
		require.NoError(t, err)
		assert.Equal(t, ZeroAddress, addr)
	})
}

func TestReverseNode(t *testing.T) {
	addr := common.HexToAddress("0x314159265dD8dbb310642f98f50C066173C1259b")
	assert.Equal(t, "314159265dd8dbb310642f98f50c066173c1259b", ReverseLabel(addr))
	assert.Equal(t, Namehash("314159265dd8dbb310642f98f50c066173c1259b.addr.reverse"), ReverseNode(addr))
	assert.Equal(t, MakeNode(Namehash("reverse"), HashLabel("addr")), AddrReverseNode)
}
