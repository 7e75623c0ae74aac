package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	resolvermodels "bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/codec"
)

// MinRegistrationDuration is the shortest lease the controller sells.
const MinRegistrationDuration = uint64(28 * 24 * time.Hour / time.Second)

// RegisterParams is everything a registration binds to. The commitment is a hash
// over all of it, so a revealed commitment cannot be replayed with a different
// owner, label or record batch.
type RegisterParams struct {
	Label         string
	Owner         common.Address
	Duration      uint64
	Secret        common.Hash
	Resolver      common.Address
	Data          []resolvermodels.RecordWrite
	WrapOwner     bool
	Fuses         uint32
	WrapperExpiry uint64
}

// commitmentPreimage fixes the field order of the hashed encoding.
type commitmentPreimage struct {
	LabelHash     []byte                       `cbor:"1,keyasint"`
	Owner         []byte                       `cbor:"2,keyasint"`
	Duration      uint64                       `cbor:"3,keyasint"`
	Secret        []byte                       `cbor:"4,keyasint"`
	Resolver      []byte                       `cbor:"5,keyasint"`
	Data          []resolvermodels.RecordWrite `cbor:"6,keyasint"`
	WrapOwner     bool                         `cbor:"7,keyasint"`
	Fuses         uint32                       `cbor:"8,keyasint"`
	WrapperExpiry uint64                       `cbor:"9,keyasint"`
}

// LabelHash is keccak256 of the label.
func (p *RegisterParams) LabelHash() common.Hash {
	return domain.HashLabel(p.Label)
}

// Node is the namehash of label.bic.
func (p *RegisterParams) Node() common.Hash {
	return domain.BICSubnode(p.Label)
}

// Validate checks the parameters that can be judged without state.
func (p *RegisterParams) Validate() error {
	if !domain.ValidLabel(p.Label) {
		return dErrors.Newf(dErrors.CodeValidation, "invalid label %q", p.Label)
	}
	if len(p.Data) > 0 && p.Resolver == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "resolver required when data supplied")
	}
	return resolvermodels.ValidateBatch(p.Data)
}

// Commitment returns keccak256 over the deterministic CBOR encoding of p.
func (p *RegisterParams) Commitment() (common.Hash, error) {
	data := p.Data
	if data == nil {
		data = []resolvermodels.RecordWrite{}
	}
	raw, err := codec.Marshal(commitmentPreimage{
		LabelHash:     p.LabelHash().Bytes(),
		Owner:         p.Owner.Bytes(),
		Duration:      p.Duration,
		Secret:        p.Secret.Bytes(),
		Resolver:      p.Resolver.Bytes(),
		Data:          data,
		WrapOwner:     p.WrapOwner,
		Fuses:         p.Fuses,
		WrapperExpiry: p.WrapperExpiry,
	})
	if err != nil {
		return common.Hash{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode commitment")
	}
	return domain.Keccak256(raw), nil
}

// Commitment is a pending commit-reveal entry.
type Commitment struct {
	Hash      common.Hash
	Timestamp uint64
}

// CheckRevealable applies the commit-reveal window at now.
func (c Commitment) CheckRevealable(now, minAge, maxAge uint64) error {
	if now < c.Timestamp+minAge {
		return dErrors.New(dErrors.CodeCommitmentTooNew, "commitment is too new")
	}
	if now > c.Timestamp+maxAge {
		return dErrors.New(dErrors.CodeCommitmentTooOld, "commitment is too old")
	}
	return nil
}

// Pending reports whether a re-commit of the same hash must be refused at now.
func (c Commitment) Pending(now, maxAge uint64) bool {
	return now <= c.Timestamp+maxAge
}

// Price is the oracle quote for a lease, in fee-token base units.
type Price struct {
	Base    *big.Int
	Premium *big.Int
}

// Total is Base + Premium; nil parts count as zero.
func (p Price) Total() *big.Int {
	total := new(big.Int)
	if p.Base != nil {
		total.Add(total, p.Base)
	}
	if p.Premium != nil {
		total.Add(total, p.Premium)
	}
	return total
}

// Registration is the outcome of a successful register.
type Registration struct {
	Node   common.Hash
	Expiry uint64
	Price  Price
}
