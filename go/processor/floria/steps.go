// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// Step is the result of advancing a machine state. It is a closed set of
// variants: Continuing, CallRequest, CreateRequest, Returns, Reverts, and
// Invalid.
type Step interface {
	isStep()
}

// Outcome is the terminal result of a frame: Returns, Reverts, or Invalid.
type Outcome interface {
	Step
	isOutcome()
}

// Continuing indicates that the frame has not finished yet.
type Continuing struct {
	State State
}

// CallRequest suspends a frame for a CALL, CALLCODE, DELEGATECALL, or
// STATICCALL. Sender, Recipient, CodeAddress, and Value describe the
// context of the child frame as determined by the evaluator for the kind
// of call.
type CallRequest struct {
	State       State // the suspended caller
	Kind        tosca.CallKind
	Sender      tosca.Address
	Recipient   tosca.Address
	CodeAddress tosca.Address
	Value       tosca.Value
	Input       tosca.Data
	Gas         tosca.Gas
}

// CreateRequest suspends a frame for a CREATE or CREATE2. The salt is only
// used by CREATE2.
type CreateRequest struct {
	State    State // the suspended creator
	Kind     tosca.CallKind
	Sender   tosca.Address
	Value    tosca.Value
	InitCode tosca.Code
	Salt     tosca.Hash
	Gas      tosca.Gas
}

// Returns is the outcome of a successfully completed frame. World is the
// world state after the frame, which is the one shared by the call tree.
type Returns struct {
	Data    tosca.Data
	GasLeft tosca.Gas
	World   WorldState
}

// Reverts is the outcome of a frame ended by a REVERT.
type Reverts struct {
	Data    tosca.Data
	GasLeft tosca.Gas
}

// Invalid is the outcome of a frame aborted by an error. A frame failing
// during its execution consumes all of its gas. If the failure is detected
// before the frame starts, like an insufficient balance for the transferred
// value, the offered gas is returned to the caller as GasLeft.
type Invalid struct {
	Err     error
	GasLeft tosca.Gas
}

func (Continuing) isStep()    {}
func (CallRequest) isStep()   {}
func (CreateRequest) isStep() {}
func (Returns) isStep()       {}
func (Reverts) isStep()       {}
func (Invalid) isStep()       {}

func (Returns) isOutcome() {}
func (Reverts) isOutcome() {}
func (Invalid) isOutcome() {}

// IsSuccess reports whether the given outcome is a Returns.
func IsSuccess(outcome Outcome) bool {
	_, ok := outcome.(Returns)
	return ok
}

// GasLeft returns the gas not consumed by a frame with the given outcome.
func GasLeft(outcome Outcome) tosca.Gas {
	switch o := outcome.(type) {
	case Returns:
		return o.GasLeft
	case Reverts:
		return o.GasLeft
	case Invalid:
		return o.GasLeft
	}
	return 0
}

// OutputOf returns the data produced by a frame with the given outcome.
func OutputOf(outcome Outcome) tosca.Data {
	switch o := outcome.(type) {
	case Returns:
		return o.Data
	case Reverts:
		return o.Data
	}
	return nil
}

const (
	ErrCallDepthExceeded        = tosca.ConstError("max call depth exceeded")
	ErrInsufficientBalance      = tosca.ConstError("insufficient balance for transfer")
	ErrNonceOverflow            = tosca.ConstError("nonce overflow")
	ErrContractAddressCollision = tosca.ConstError("contract address collision")
	ErrMaxCodeSizeExceeded      = tosca.ConstError("max code size exceeded")
	ErrInvalidCode              = tosca.ConstError("invalid code: must not begin with 0xef")
)
