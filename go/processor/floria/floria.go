// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package floria implements an execution driver orchestrating the call tree
// of a transaction. The execution of individual frames is delegated to an
// Evaluator advancing an opaque machine state. Whenever the evaluator
// suspends a frame for a nested call or contract creation, the driver runs
// the child frame against the shared world state and resumes the parent
// with the child's outcome.
package floria

//go:generate mockgen -source floria.go -destination floria_mock.go -package floria

import (
	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// Context is the immutable environment of a single frame.
type Context struct {
	Kind        tosca.CallKind
	Sender      tosca.Address
	Origin      tosca.Address // sender of the outermost transaction
	Recipient   tosca.Address // account whose storage and balance are used
	CodeAddress tosca.Address // account providing the executed code
	Value       tosca.Value
	Input       tosca.Data
	GasPrice    tosca.Value
	Block       tosca.BlockParameters
	Static      bool
	Depth       int // 1 for the outermost frame
}

// Frame is everything needed to start the execution of a call or create.
// World and SubState are shared among all frames of a call tree.
type Frame struct {
	Context  Context
	Code     tosca.Code
	Gas      tosca.Gas
	World    WorldState
	SubState *state.SubState
}

// WorldState is the account state read and modified by frames. The
// Begin/Commit/Rollback seam allows evaluators to revert the effects of
// failed frames; the driver itself never rolls back.
type WorldState interface {
	UpsertAccount(address tosca.Address, nonce uint64, balance tosca.Value, storage state.Storage, code tosca.Code)
	GetAccount(address tosca.Address) (*state.Account, bool)
	AccountExists(address tosca.Address) bool

	GetBalance(address tosca.Address) tosca.Value
	SetBalance(address tosca.Address, value tosca.Value)
	GetNonce(address tosca.Address) uint64
	SetNonce(address tosca.Address, nonce uint64)
	GetCode(address tosca.Address) tosca.Code
	GetCodeHash(address tosca.Address) tosca.Hash
	SetCode(address tosca.Address, code tosca.Code)
	GetStorage(address tosca.Address, key tosca.Key) tosca.Word
	SetStorage(address tosca.Address, key tosca.Key, value tosca.Word) tosca.StorageStatus

	Touch(address tosca.Address)
	IsTouched(address tosca.Address) bool

	Begin() state.Snapshot
	Commit(state.Snapshot)
	Rollback(state.Snapshot)
}

var _ WorldState = (*state.WorldState)(nil)

// State is the evaluator specific machine state of a frame. The driver
// never inspects it.
type State any

// Evaluator advances the machine state of frames.
type Evaluator interface {
	// Start creates the initial state of the given frame.
	Start(frame Frame) State
	// Step advances the given state by zero or more instructions until the
	// frame either continues, requests a nested call or create, or ends.
	Step(state State) Step
	// ResumeCall continues a suspended frame with the outcome of its call.
	ResumeCall(state State, outcome Outcome) State
	// ResumeCreate continues a suspended frame with the outcome of its
	// contract creation. The address is the derived address of the new
	// contract, regardless of whether the creation succeeded.
	ResumeCreate(state State, address tosca.Address, outcome Outcome) State
}

// Tracer observes the execution of frames. It is called once before every
// evaluator step with the current Continuing state and once with the
// terminal outcome of each frame. Tracers must not modify the state.
type Tracer interface {
	Step(depth int, step Step)
}
