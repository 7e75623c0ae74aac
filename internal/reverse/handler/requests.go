package handler

import (
	"github.com/ethereum/go-ethereum/common"

	"bicns/pkg/domain"
)

type SetNameRequest struct {
	Addr     string `json:"addr,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Resolver string `json:"resolver,omitempty"`
	Name     string `json:"name"`

	addr, owner, resolver common.Address
}

func (r *SetNameRequest) Validate() error {
	var err error
	if r.addr, err = domain.ParseOptionalAddress(r.Addr); err != nil {
		return err
	}
	if r.owner, err = domain.ParseOptionalAddress(r.Owner); err != nil {
		return err
	}
	if r.resolver, err = domain.ParseOptionalAddress(r.Resolver); err != nil {
		return err
	}
	return nil
}
