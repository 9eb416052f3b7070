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
	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// Transaction is an external invocation starting a call tree. A nil
// recipient requests the creation of a contract with Input as init code.
type Transaction struct {
	Sender    tosca.Address
	Recipient *tosca.Address
	Value     tosca.Value
	Input     tosca.Data
	Gas       tosca.Gas
	GasPrice  tosca.Value
}

// Receipt summarizes the execution of a transaction.
type Receipt struct {
	Outcome         Outcome
	ContractAddress *tosca.Address
	Logs            []tosca.Log
}

func (r Receipt) Success() bool {
	return IsSuccess(r.Outcome)
}

// Processor runs transactions on a world state. Effects of transactions not
// ending in a Returns outcome are rolled back.
type Processor struct {
	driver *Driver
	config Config
}

func NewProcessor(evaluator Evaluator, config Config) *Processor {
	return &Processor{
		driver: NewDriver(evaluator),
		config: config,
	}
}

// Run executes a call or create transaction and reports its result. If no
// sub-state is given, a fresh one is used for the transaction.
func (p *Processor) Run(
	block tosca.BlockParameters,
	transaction Transaction,
	world WorldState,
	substate *state.SubState,
	tracer Tracer,
) Receipt {
	if substate == nil {
		substate = state.NewSubState()
	}
	if transaction.Recipient == nil {
		address, outcome := p.Create(block, transaction, world, substate, tracer)
		receipt := Receipt{Outcome: outcome, Logs: substate.Logs()}
		if IsSuccess(outcome) {
			receipt.ContractAddress = &address
		}
		return receipt
	}
	outcome := p.Call(block, transaction, world, substate, tracer)
	return Receipt{Outcome: outcome, Logs: substate.Logs()}
}

// Call runs a message call from the transaction's sender to its recipient.
func (p *Processor) Call(
	block tosca.BlockParameters,
	transaction Transaction,
	world WorldState,
	substate *state.SubState,
	tracer Tracer,
) Outcome {
	if substate == nil {
		substate = state.NewSubState()
	}
	recipient := tosca.Address{}
	if transaction.Recipient != nil {
		recipient = *transaction.Recipient
	}
	world.Touch(transaction.Sender)
	world.Touch(recipient)
	p.applySenderPolicy(world, transaction.Sender)

	root := rootFrame(block, transaction, world, substate)
	request := CallRequest{
		Kind:        tosca.Call,
		Sender:      transaction.Sender,
		Recipient:   recipient,
		CodeAddress: recipient,
		Value:       transaction.Value,
		Input:       transaction.Input,
		Gas:         transaction.Gas,
	}
	return p.transact(world, substate, func() Outcome {
		return p.driver.executeCall(0, tracer, &root, request)
	})
}

// Create runs a contract creation using the transaction's input as init
// code. The derived address is returned even if the creation failed.
func (p *Processor) Create(
	block tosca.BlockParameters,
	transaction Transaction,
	world WorldState,
	substate *state.SubState,
	tracer Tracer,
) (tosca.Address, Outcome) {
	if substate == nil {
		substate = state.NewSubState()
	}
	world.Touch(transaction.Sender)
	p.applySenderPolicy(world, transaction.Sender)

	root := rootFrame(block, transaction, world, substate)
	request := CreateRequest{
		Kind:     tosca.Create,
		Sender:   transaction.Sender,
		Value:    transaction.Value,
		InitCode: tosca.Code(transaction.Input),
		Gas:      transaction.Gas,
	}
	var address tosca.Address
	outcome := p.transact(world, substate, func() Outcome {
		var outcome Outcome
		address, outcome = p.driver.executeCreate(0, tracer, &root, request)
		return outcome
	})
	return address, outcome
}

func (p *Processor) applySenderPolicy(world WorldState, sender tosca.Address) {
	if p.config.AutoCreateSender && !world.AccountExists(sender) {
		world.UpsertAccount(sender, 0, p.config.DefaultSenderBalance, nil, nil)
	}
}

// transact runs the given execution within a snapshot of the world state
// and sub-state that is rolled back unless the execution succeeds.
func (p *Processor) transact(world WorldState, substate *state.SubState, run func() Outcome) Outcome {
	worldSnapshot := world.Begin()
	subSnapshot := substate.Begin()
	outcome := run()
	if IsSuccess(outcome) {
		substate.Commit(subSnapshot)
		world.Commit(worldSnapshot)
	} else {
		substate.Rollback(subSnapshot)
		world.Rollback(worldSnapshot)
	}
	return outcome
}

// rootFrame is the virtual parent of the outermost frame of a transaction.
func rootFrame(
	block tosca.BlockParameters,
	transaction Transaction,
	world WorldState,
	substate *state.SubState,
) Frame {
	return Frame{
		Context: Context{
			Sender:   transaction.Sender,
			Origin:   transaction.Sender,
			GasPrice: transaction.GasPrice,
			Block:    block,
		},
		World:    world,
		SubState: substate,
	}
}
