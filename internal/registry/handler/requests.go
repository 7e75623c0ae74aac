package handler

import (
	"github.com/ethereum/go-ethereum/common"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
)

type SetOwnerRequest struct {
	Owner string `json:"owner"`

	owner common.Address
}

func (r *SetOwnerRequest) Validate() error {
	addr, err := domain.ParseAddress(r.Owner)
	if err != nil {
		return err
	}
	r.owner = addr
	return nil
}

type SetResolverRequest struct {
	Resolver string `json:"resolver"`

	resolver common.Address
}

func (r *SetResolverRequest) Validate() error {
	addr, err := domain.ParseOptionalAddress(r.Resolver)
	if err != nil {
		return err
	}
	r.resolver = addr
	return nil
}

type SetTTLRequest struct {
	TTL uint64 `json:"ttl"`
}

func (r *SetTTLRequest) Validate() error { return nil }

type SetRecordRequest struct {
	Owner    string `json:"owner"`
	Resolver string `json:"resolver"`
	TTL      uint64 `json:"ttl"`

	owner    common.Address
	resolver common.Address
}

func (r *SetRecordRequest) Validate() error {
	owner, err := domain.ParseAddress(r.Owner)
	if err != nil {
		return err
	}
	resolver, err := domain.ParseOptionalAddress(r.Resolver)
	if err != nil {
		return err
	}
	r.owner, r.resolver = owner, resolver
	return nil
}

// SubnodeRequest creates or reassigns a child. Either Label or LabelHash names
// the child; Resolver and TTL turn it into a setSubnodeRecord call.
type SubnodeRequest struct {
	Label     string  `json:"label,omitempty"`
	LabelHash string  `json:"label_hash,omitempty"`
	Owner     string  `json:"owner"`
	Resolver  *string `json:"resolver,omitempty"`
	TTL       *uint64 `json:"ttl,omitempty"`

	labelHash common.Hash
	owner     common.Address
	resolver  common.Address
}

func (r *SubnodeRequest) Validate() error {
	switch {
	case r.Label != "" && r.LabelHash != "":
		return dErrors.New(dErrors.CodeValidation, "provide label or label_hash, not both")
	case r.Label != "":
		r.labelHash = domain.HashLabel(r.Label)
	case r.LabelHash != "":
		h, err := domain.ParseLabelHash(r.LabelHash)
		if err != nil {
			return err
		}
		r.labelHash = h
	default:
		return dErrors.New(dErrors.CodeValidation, "label or label_hash is required")
	}
	owner, err := domain.ParseOptionalAddress(r.Owner)
	if err != nil {
		return err
	}
	r.owner = owner
	if r.Resolver != nil {
		resolver, err := domain.ParseOptionalAddress(*r.Resolver)
		if err != nil {
			return err
		}
		r.resolver = resolver
	}
	return nil
}

func (r *SubnodeRequest) isRecord() bool {
	return r.Resolver != nil || r.TTL != nil
}

func (r *SubnodeRequest) ttl() uint64 {
	if r.TTL == nil {
		return 0
	}
	return *r.TTL
}

type SetApprovalRequest struct {
	Approved bool `json:"approved"`
}

func (r *SetApprovalRequest) Validate() error { return nil }
