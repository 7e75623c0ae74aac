package handler

import (
	"github.com/ethereum/go-ethereum/common"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
)

// WrapRequest carries a dotted name; it is DNS-encoded before wrapping.
type WrapRequest struct {
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Resolver string `json:"resolver,omitempty"`

	encoded  []byte
	owner    common.Address
	resolver common.Address
}

func (r *WrapRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	encoded, err := domain.EncodeName(r.Name)
	if err != nil {
		return err
	}
	owner, err := domain.ParseAddress(r.Owner)
	if err != nil {
		return err
	}
	resolver, err := domain.ParseOptionalAddress(r.Resolver)
	if err != nil {
		return err
	}
	r.encoded, r.owner, r.resolver = encoded, owner, resolver
	return nil
}

type WrapBIC2LDRequest struct {
	Label    string `json:"label"`
	Owner    string `json:"owner"`
	Fuses    uint32 `json:"fuses"`
	Expiry   uint64 `json:"expiry"`
	Resolver string `json:"resolver,omitempty"`

	owner    common.Address
	resolver common.Address
}

func (r *WrapBIC2LDRequest) Validate() error {
	if r.Label == "" {
		return dErrors.New(dErrors.CodeValidation, "label is required")
	}
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

type UnwrapRequest struct {
	Parent     string `json:"parent"`
	Label      string `json:"label,omitempty"`
	LabelHash  string `json:"label_hash,omitempty"`
	Controller string `json:"controller"`

	parent     common.Hash
	labelHash  common.Hash
	controller common.Address
}

func (r *UnwrapRequest) Validate() error {
	parent, err := domain.ParseNode(r.Parent)
	if err != nil {
		return err
	}
	labelHash, err := resolveLabel(r.Label, r.LabelHash)
	if err != nil {
		return err
	}
	controller, err := domain.ParseAddress(r.Controller)
	if err != nil {
		return err
	}
	r.parent, r.labelHash, r.controller = parent, labelHash, controller
	return nil
}

type UnwrapBIC2LDRequest struct {
	Label      string `json:"label,omitempty"`
	LabelHash  string `json:"label_hash,omitempty"`
	Registrant string `json:"registrant"`
	Controller string `json:"controller"`

	labelHash  common.Hash
	registrant common.Address
	controller common.Address
}

func (r *UnwrapBIC2LDRequest) Validate() error {
	labelHash, err := resolveLabel(r.Label, r.LabelHash)
	if err != nil {
		return err
	}
	registrant, err := domain.ParseAddress(r.Registrant)
	if err != nil {
		return err
	}
	controller, err := domain.ParseOptionalAddress(r.Controller)
	if err != nil {
		return err
	}
	r.labelHash, r.registrant, r.controller = labelHash, registrant, controller
	return nil
}

// SubnodeRequest creates or reassigns a wrapped child. Resolver or TTL turn it
// into a record write.
type SubnodeRequest struct {
	Label    string  `json:"label"`
	Owner    string  `json:"owner"`
	Fuses    uint32  `json:"fuses"`
	Expiry   uint64  `json:"expiry"`
	Resolver *string `json:"resolver,omitempty"`
	TTL      *uint64 `json:"ttl,omitempty"`

	owner    common.Address
	resolver common.Address
}

func (r *SubnodeRequest) Validate() error {
	if r.Label == "" {
		return dErrors.New(dErrors.CodeValidation, "label is required")
	}
	owner, err := domain.ParseAddress(r.Owner)
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

type SetFusesRequest struct {
	Fuses uint32 `json:"fuses"`
}

func (r *SetFusesRequest) Validate() error {
	if r.Fuses == 0 {
		return dErrors.New(dErrors.CodeValidation, "fuses to burn are required")
	}
	return nil
}

type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`

	from common.Address
	to   common.Address
}

func (r *TransferRequest) Validate() error {
	from, err := domain.ParseAddress(r.From)
	if err != nil {
		return err
	}
	to, err := domain.ParseAddress(r.To)
	if err != nil {
		return err
	}
	r.from, r.to = from, to
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

type SetApprovalRequest struct {
	Approved bool `json:"approved"`
}

func (r *SetApprovalRequest) Validate() error { return nil }

type SetControllerRequest struct {
	Active bool `json:"active"`
}

func (r *SetControllerRequest) Validate() error { return nil }

func resolveLabel(label, labelHash string) (common.Hash, error) {
	switch {
	case label != "" && labelHash != "":
		return common.Hash{}, dErrors.New(dErrors.CodeValidation, "provide label or label_hash, not both")
	case label != "":
		return domain.HashLabel(label), nil
	case labelHash != "":
		return domain.ParseLabelHash(labelHash)
	default:
		return common.Hash{}, dErrors.New(dErrors.CodeValidation, "label or label_hash is required")
	}
}
