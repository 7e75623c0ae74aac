package models

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bicns/pkg/domain-errors"
)

func TestRecordWriteValidate(t *testing.T) {
	cases := []struct {
		name  string
		write RecordWrite
		ok    bool
	}{
		{"addr", RecordWrite{Kind: KindAddr, Value: "0x00000000000000000000000000000000000000a1"}, true},
		{"addr clear", RecordWrite{Kind: KindAddr}, true},
		{"addr garbage", RecordWrite{Kind: KindAddr, Value: "nope"}, false},
		{"text", RecordWrite{Kind: KindText, Key: "url", Value: "https://example.bic"}, true},
		{"text without key", RecordWrite{Kind: KindText, Value: "x"}, false},
		{"contenthash", RecordWrite{Kind: KindContenthash, Value: "0xe301"}, true},
		{"contenthash garbage", RecordWrite{Kind: KindContenthash, Value: "e301"}, false},
		{"name", RecordWrite{Kind: KindName, Value: "alice.bic"}, true},
		{"unknown kind", RecordWrite{Kind: "pubkey", Value: "x"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.write.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestValidateBatchRejectsWholeBatch(t *testing.T) {
	err := ValidateBatch([]RecordWrite{
		{Kind: KindName, Value: "alice.bic"},
		{Kind: KindText, Value: "missing key"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}

func TestRecordsApply(t *testing.T) {
	r := &Records{}
	r.Apply([]RecordWrite{
		{Kind: KindAddr, Value: "0x00000000000000000000000000000000000000a1"},
		{Kind: KindText, Key: "url", Value: "https://a.bic"},
		{Kind: KindContenthash, Value: "0xe301"},
		{Kind: KindName, Value: "alice.bic"},
	})
	assert.Equal(t, common.HexToAddress("0xa1"), r.Addr)
	assert.Equal(t, "https://a.bic", r.Texts["url"])
	assert.Equal(t, []byte{0xe3, 0x01}, []byte(r.Contenthash))
	assert.Equal(t, "alice.bic", r.Name)

	clone := r.Clone()
	r.Apply([]RecordWrite{{Kind: KindText, Key: "url"}, {Kind: KindAddr}})
	assert.Empty(t, r.Texts)
	assert.Equal(t, "https://a.bic", clone.Texts["url"])
	assert.False(t, r.Empty())

	r.Apply([]RecordWrite{{Kind: KindContenthash}, {Kind: KindName}})
	assert.True(t, r.Empty())
}
