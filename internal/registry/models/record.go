package models

import "github.com/ethereum/go-ethereum/common"

// Record is the registry entry for one node. A record with a zero owner is
// logically empty: nobody may administer the node until an ancestor reassigns it.
type Record struct {
	Owner    common.Address
	Resolver common.Address
	TTL      uint64
}

// Exists reports whether the node currently has an owner.
func (r Record) Exists() bool {
	return r.Owner != (common.Address{})
}
