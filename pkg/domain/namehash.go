package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// TLD is the top-level namespace leased by the base registrar.
const TLD = "bic"

var (
	// RootNode is the all-zero identifier every namehash starts from.
	RootNode Node
	// BICNode is namehash("bic").
	BICNode = Namehash(TLD)
	// AddrReverseNode is namehash("addr.reverse"), parent of every reverse record.
	AddrReverseNode = Namehash("addr.reverse")
)

// Keccak256 hashes the concatenation of data with legacy (pre-NIST) Keccak-256.
func Keccak256(data ...[]byte) common.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out common.Hash
	h.Sum(out[:0])
	return out
}

// HashLabel returns keccak256(label).
func HashLabel(label string) LabelHash {
	return Keccak256([]byte(label))
}

// MakeNode derives a child node from its parent and label hash.
func MakeNode(parent Node, label LabelHash) Node {
	return Keccak256(parent.Bytes(), label.Bytes())
}

// Namehash computes the node of a dotted name. The empty name is the root.
// Labels are hashed as given; callers normalise case before hashing.
func Namehash(name string) Node {
	node := RootNode
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		node = MakeNode(node, HashLabel(labels[i]))
	}
	return node
}

// BICSubnode returns the node of label.bic.
func BICSubnode(label string) Node {
	return MakeNode(BICNode, HashLabel(label))
}

// ReverseLabel is the label of addr under addr.reverse: lower-case hex without 0x.
func ReverseLabel(addr common.Address) string {
	return strings.ToLower(strings.TrimPrefix(addr.Hex(), "0x"))
}

// ReverseNode returns namehash(ReverseLabel(addr) + ".addr.reverse").
func ReverseNode(addr common.Address) Node {
	return MakeNode(AddrReverseNode, HashLabel(ReverseLabel(addr)))
}
