package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	dErrors "bicns/pkg/domain-errors"
)

// Node identifies a position in the name hierarchy (namehash of a dotted name).
type Node = common.Hash

// LabelHash is keccak256 of a single label. Under the bic node it doubles as the
// registrar token id.
type LabelHash = common.Hash

// ZeroAddress is the null owner. Assigning it revokes every right over a node.
var ZeroAddress common.Address

// ParseHash parses any 0x-prefixed 32-byte value such as a commitment or secret.
func ParseHash(s string) (common.Hash, error) {
	return parseHash(s, "hash")
}

// ParseNode parses a 0x-prefixed 32-byte hex node identifier.
// The zero node is accepted: it is the root.
func ParseNode(s string) (Node, error) {
	return parseHash(s, "node")
}

// ParseLabelHash parses a 0x-prefixed 32-byte hex label hash.
func ParseLabelHash(s string) (LabelHash, error) {
	h, err := parseHash(s, "label hash")
	if err != nil {
		return LabelHash{}, err
	}
	if h == (common.Hash{}) {
		return LabelHash{}, dErrors.New(dErrors.CodeInvalidInput, "label hash cannot be zero")
	}
	return h, nil
}

// ParseAddress parses a 0x-prefixed 20-byte hex address. Checksums are not enforced.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must be 0x-prefixed")
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, dErrors.New(dErrors.CodeInvalidInput, "invalid address")
	}
	return common.HexToAddress(s), nil
}

// ParseOptionalAddress is ParseAddress that maps "" to the zero address.
func ParseOptionalAddress(s string) (common.Address, error) {
	if strings.TrimSpace(s) == "" {
		return ZeroAddress, nil
	}
	return ParseAddress(s)
}

// SystemAddress derives the fixed identity a component acts under when it calls
// another component.
func SystemAddress(name string) common.Address {
	return common.BytesToAddress(Keccak256([]byte("bicns:" + name)).Bytes()[12:])
}

func parseHash(s, what string) (common.Hash, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Hash{}, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be 0x-prefixed", what)
	}
	raw := s[2:]
	if len(raw) != 2*common.HashLength {
		return common.Hash{}, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be 32 bytes", what)
	}
	for _, c := range raw {
		if !isHexDigit(c) {
			return common.Hash{}, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be hex", what)
		}
	}
	return common.HexToHash(s), nil
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
