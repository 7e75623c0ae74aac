// Package events defines the observable events the registry components emit and
// the outbox contract that carries them to indexers.
//
// Components append events inside the same store transaction as the state change
// that caused them, so an event exists if and only if its change committed, and
// events of one operation keep their causal order.
package events

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"

	"bicns/pkg/requestcontext"
)

// Type names an event. The prefix is the emitting component.
type Type string

const (
	TypeTransfer          Type = "registry.Transfer"
	TypeNewOwner          Type = "registry.NewOwner"
	TypeNewResolver       Type = "registry.NewResolver"
	TypeNewTTL            Type = "registry.NewTTL"
	TypeRegistryApproval  Type = "registry.ApprovalForAll"
	TypeLabelRegistered   Type = "registrar.NameRegistered"
	TypeLabelRenewed      Type = "registrar.NameRenewed"
	TypeLabelTransfer     Type = "registrar.Transfer"
	TypeLabelApproval     Type = "registrar.Approval"
	TypeRegistrarApproval Type = "registrar.ApprovalForAll"
	TypeControllerAdded   Type = "registrar.ControllerAdded"
	TypeControllerRemoved Type = "registrar.ControllerRemoved"
	TypeNameWrapped       Type = "wrapper.NameWrapped"
	TypeNameUnwrapped     Type = "wrapper.NameUnwrapped"
	TypeFusesSet          Type = "wrapper.FusesSet"
	TypeExpiryExtended    Type = "wrapper.ExpiryExtended"
	TypeTransferSingle    Type = "wrapper.TransferSingle"
	TypeWrapperApproval   Type = "wrapper.ApprovalForAll"
	TypeControllerChanged Type = "wrapper.ControllerChanged"
	TypeNameRegistered    Type = "controller.NameRegistered"
	TypeNameRenewed       Type = "controller.NameRenewed"
	TypeRecordsChanged    Type = "resolver.RecordsChanged"
	TypeReverseClaimed    Type = "reverse.ReverseClaimed"
)

// Event is one outbox entry. Payload is one of the payload structs below when the
// event was produced in-process, or the raw JSON when read back from a durable outbox.
type Event struct {
	ID         uuid.UUID
	Seq        int64
	Type       Type
	Node       common.Hash
	Payload    any
	OccurredAt time.Time
}

// New stamps an event with a fresh id and the request time.
func New(ctx context.Context, typ Type, node common.Hash, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		Node:       node,
		Payload:    payload,
		OccurredAt: requestcontext.Now(ctx),
	}
}

// Sink receives events inside a store transaction.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// -----------------------------------------------------------------------------
// Payloads
// -----------------------------------------------------------------------------

type Transfer struct {
	Node  common.Hash    `json:"node"`
	Owner common.Address `json:"owner"`
}

type NewOwner struct {
	Parent common.Hash    `json:"parent"`
	Label  common.Hash    `json:"label_hash"`
	Owner  common.Address `json:"owner"`
}

type NewResolver struct {
	Node     common.Hash    `json:"node"`
	Resolver common.Address `json:"resolver"`
}

type NewTTL struct {
	Node common.Hash `json:"node"`
	TTL  uint64      `json:"ttl"`
}

type ApprovalForAll struct {
	Owner    common.Address `json:"owner"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}

type LabelRegistered struct {
	LabelHash common.Hash    `json:"label_hash"`
	Owner     common.Address `json:"owner"`
	Expiry    uint64         `json:"expiry"`
}

type LabelRenewed struct {
	LabelHash common.Hash `json:"label_hash"`
	Expiry    uint64      `json:"expiry"`
}

type LabelTransfer struct {
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	LabelHash common.Hash    `json:"label_hash"`
}

type LabelApproval struct {
	Owner     common.Address `json:"owner"`
	Approved  common.Address `json:"approved"`
	LabelHash common.Hash    `json:"label_hash"`
}

type ControllerChanged struct {
	Controller common.Address `json:"controller"`
	Enabled    bool           `json:"enabled"`
}

type NameWrapped struct {
	Node   common.Hash    `json:"node"`
	Name   hexutil.Bytes  `json:"name"`
	Owner  common.Address `json:"owner"`
	Fuses  uint32         `json:"fuses"`
	Expiry uint64         `json:"expiry"`
}

type NameUnwrapped struct {
	Node  common.Hash    `json:"node"`
	Owner common.Address `json:"owner"`
}

type FusesSet struct {
	Node   common.Hash `json:"node"`
	Fuses  uint32      `json:"fuses"`
	Expiry uint64      `json:"expiry"`
}

type ExpiryExtended struct {
	Node   common.Hash `json:"node"`
	Expiry uint64      `json:"expiry"`
}

type TransferSingle struct {
	Operator common.Address `json:"operator"`
	From     common.Address `json:"from"`
	To       common.Address `json:"to"`
	ID       common.Hash    `json:"id"`
}

// NameRegistered is emitted once per successful controller registration.
// Amounts are decimal strings in fee-token base units.
type NameRegistered struct {
	Label     string         `json:"label"`
	LabelHash common.Hash    `json:"label_hash"`
	Owner     common.Address `json:"owner"`
	Duration  uint64         `json:"duration"`
	BaseCost  string         `json:"base_cost"`
	Premium   string         `json:"premium"`
	Expiry    uint64         `json:"expiry"`
}

type NameRenewed struct {
	Label     string      `json:"label"`
	LabelHash common.Hash `json:"label_hash"`
	Cost      string      `json:"cost"`
	Expiry    uint64      `json:"expiry"`
}

// RecordsChanged lists the record kinds one batch touched, in batch order.
type RecordsChanged struct {
	Node  common.Hash `json:"node"`
	Kinds []string    `json:"kinds"`
}

type ReverseClaimed struct {
	Addr common.Address `json:"addr"`
	Node common.Hash    `json:"node"`
	Name string         `json:"name"`
}
