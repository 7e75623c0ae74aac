// Package approvals stores the two delegation tables the ownership layers share:
// operator approvals (an owner lets another address act on all of its names) and
// controller allowlists (addresses a component trusts for privileged calls).
//
// Each layer reads and writes its own Scope, so an operator of the registry is
// not automatically an operator of the registrar or the wrapper.
package approvals

import "github.com/ethereum/go-ethereum/common"

// Scope names the ownership layer a row belongs to.
type Scope string

const (
	ScopeRegistry  Scope = "registry"
	ScopeRegistrar Scope = "registrar"
	ScopeWrapper   Scope = "wrapper"
)

type operatorKey struct {
	scope    Scope
	owner    common.Address
	operator common.Address
}

type controllerKey struct {
	scope   Scope
	address common.Address
}
