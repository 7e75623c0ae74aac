package models

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
)

// Kind selects which record a RecordWrite targets.
type Kind string

const (
	KindAddr        Kind = "addr"
	KindText        Kind = "text"
	KindContenthash Kind = "contenthash"
	KindName        Kind = "name"
)

const (
	maxTextKeyLength = 256
	maxValueLength   = 4096
)

// RecordWrite is one entry of a resolver batch. Key is only used by text records.
// An empty Value clears the record.
type RecordWrite struct {
	Kind  Kind   `json:"kind" cbor:"1,keyasint"`
	Key   string `json:"key,omitempty" cbor:"2,keyasint,omitempty"`
	Value string `json:"value" cbor:"3,keyasint"`
}

// Validate checks the write in isolation.
func (w RecordWrite) Validate() error {
	if len(w.Value) > maxValueLength {
		return dErrors.Newf(dErrors.CodeValidation, "%s value too long", w.Kind)
	}
	switch w.Kind {
	case KindAddr:
		if w.Value == "" {
			return nil
		}
		if _, err := domain.ParseAddress(w.Value); err != nil {
			return dErrors.New(dErrors.CodeValidation, "addr value must be a 0x address")
		}
	case KindText:
		key := strings.TrimSpace(w.Key)
		if key == "" {
			return dErrors.New(dErrors.CodeValidation, "text record requires a key")
		}
		if len(key) > maxTextKeyLength {
			return dErrors.New(dErrors.CodeValidation, "text key too long")
		}
	case KindContenthash:
		if w.Value == "" {
			return nil
		}
		if _, err := hexutil.Decode(w.Value); err != nil {
			return dErrors.New(dErrors.CodeValidation, "contenthash must be 0x hex")
		}
	case KindName:
	default:
		return dErrors.Newf(dErrors.CodeValidation, "unsupported record kind %q", w.Kind)
	}
	return nil
}

// ValidateBatch validates every write before any is applied.
func ValidateBatch(batch []RecordWrite) error {
	for i, w := range batch {
		if err := w.Validate(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("record %d rejected", i))
		}
	}
	return nil
}

// Records is the full record set stored for a node.
type Records struct {
	Addr        common.Address    `json:"addr"`
	Texts       map[string]string `json:"texts,omitempty"`
	Contenthash hexutil.Bytes     `json:"contenthash,omitempty"`
	Name        string            `json:"name,omitempty"`
}

// Clone returns a deep copy.
func (r *Records) Clone() *Records {
	if r == nil {
		return &Records{}
	}
	out := *r
	if r.Texts != nil {
		out.Texts = make(map[string]string, len(r.Texts))
		for k, v := range r.Texts {
			out.Texts[k] = v
		}
	}
	if r.Contenthash != nil {
		out.Contenthash = append(hexutil.Bytes(nil), r.Contenthash...)
	}
	return &out
}

// Apply folds a validated batch into r in order.
func (r *Records) Apply(batch []RecordWrite) {
	for _, w := range batch {
		switch w.Kind {
		case KindAddr:
			if w.Value == "" {
				r.Addr = common.Address{}
			} else {
				r.Addr = common.HexToAddress(w.Value)
			}
		case KindText:
			key := strings.TrimSpace(w.Key)
			if w.Value == "" {
				delete(r.Texts, key)
				continue
			}
			if r.Texts == nil {
				r.Texts = map[string]string{}
			}
			r.Texts[key] = w.Value
		case KindContenthash:
			if w.Value == "" {
				r.Contenthash = nil
			} else {
				r.Contenthash = hexutil.MustDecode(w.Value)
			}
		case KindName:
			r.Name = w.Value
		}
	}
}

// Empty reports whether no record is set.
func (r *Records) Empty() bool {
	return r == nil || (r.Addr == common.Address{} && len(r.Texts) == 0 && len(r.Contenthash) == 0 && r.Name == "")
}
