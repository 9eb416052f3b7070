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

const (
	// MaxCodeSize is the maximum size of deployed contract code (EIP-170).
	MaxCodeSize = 24576
)

// executeCall performs the housekeeping of a call requested by the given
// parent frame and runs the callee in a child frame if it has code.
func (d *Driver) executeCall(depth int, tracer Tracer, parent *Frame, request CallRequest) Outcome {
	world := parent.World
	kind := request.Kind
	transfersValue := kind == tosca.Call || kind == tosca.CallCode

	if transfersValue && !canTransferValue(world, request.Value, request.Sender, &request.Recipient) {
		return Invalid{Err: ErrInsufficientBalance, GasLeft: request.Gas}
	}
	world.Touch(request.CodeAddress)
	if transfersValue {
		transferValue(world, request.Value, request.Sender, request.Recipient)
	}

	if output, isPrecompiled := handlePrecompiled(request.CodeAddress, request.Input); isPrecompiled {
		return Returns{Data: output, GasLeft: request.Gas, World: world}
	}

	account, found := world.GetAccount(request.CodeAddress)
	if !found || len(account.Code) == 0 {
		return Returns{GasLeft: request.Gas, World: world}
	}

	child := Frame{
		Context: Context{
			Kind:        kind,
			Sender:      request.Sender,
			Origin:      parent.Context.Origin,
			Recipient:   request.Recipient,
			CodeAddress: request.CodeAddress,
			Value:       request.Value,
			Input:       request.Input,
			GasPrice:    parent.Context.GasPrice,
			Block:       parent.Context.Block,
			Static:      parent.Context.Static || kind == tosca.StaticCall,
			Depth:       depth + 1,
		},
		Code:     account.Code,
		Gas:      request.Gas,
		World:    world,
		SubState: parent.SubState,
	}
	return d.Run(depth+1, tracer, child)
}

// executeCreate derives the address of the new contract, sets up its
// account, runs the init code in a child frame, and installs the resulting
// code. The returned address is valid even if the creation failed.
func (d *Driver) executeCreate(depth int, tracer Tracer, parent *Frame, request CreateRequest) (tosca.Address, Outcome) {
	world := parent.World
	sender := request.Sender

	// The address is based on the nonce before the increment.
	nonce := world.GetNonce(sender)
	var address tosca.Address
	if request.Kind == tosca.Create2 {
		address = Create2Address(sender, request.Salt, request.InitCode)
	} else {
		address = CreateAddress(sender, nonce)
	}

	if !canTransferValue(world, request.Value, sender, &address) {
		return address, Invalid{Err: ErrInsufficientBalance, GasLeft: request.Gas}
	}
	if err := incrementNonce(world, sender); err != nil {
		return address, Invalid{Err: err, GasLeft: request.Gas}
	}
	world.Touch(address)

	if world.GetNonce(address) != 0 || len(world.GetCode(address)) != 0 {
		return address, Invalid{Err: ErrContractAddressCollision}
	}
	world.UpsertAccount(address, 1, world.GetBalance(address), nil, nil)
	transferValue(world, request.Value, sender, address)

	child := Frame{
		Context: Context{
			Kind:        request.Kind,
			Sender:      sender,
			Origin:      parent.Context.Origin,
			Recipient:   address,
			CodeAddress: address,
			Value:       request.Value,
			GasPrice:    parent.Context.GasPrice,
			Block:       parent.Context.Block,
			Depth:       depth + 1,
		},
		Code:     request.InitCode,
		Gas:      request.Gas,
		World:    world,
		SubState: parent.SubState,
	}

	outcome := d.Run(depth+1, tracer, child)
	result, success := outcome.(Returns)
	if !success {
		return address, outcome
	}

	code := result.Data
	if len(code) > MaxCodeSize {
		return address, Invalid{Err: ErrMaxCodeSizeExceeded}
	}
	if len(code) > 0 && code[0] == 0xEF {
		return address, Invalid{Err: ErrInvalidCode}
	}
	world.SetCode(address, tosca.Code(code))
	return address, result
}

func canTransferValue(
	world WorldState,
	value tosca.Value,
	sender tosca.Address,
	recipient *tosca.Address,
) bool {
	if value == (tosca.Value{}) {
		return true
	}

	senderBalance := world.GetBalance(sender)
	if senderBalance.Cmp(value) < 0 {
		return false
	}

	if recipient == nil || sender == *recipient {
		return true
	}

	receiverBalance := world.GetBalance(*recipient)
	updatedBalance := tosca.Add(receiverBalance, value)
	if updatedBalance.Cmp(receiverBalance) < 0 || updatedBalance.Cmp(value) < 0 {
		return false
	}

	return true
}

func incrementNonce(world WorldState, address tosca.Address) error {
	nonce := world.GetNonce(address)
	if nonce+1 < nonce {
		return ErrNonceOverflow
	}
	world.SetNonce(address, nonce+1)
	return nil
}

func transferValue(
	world WorldState,
	value tosca.Value,
	sender tosca.Address,
	recipient tosca.Address,
) {
	if value == (tosca.Value{}) {
		return
	}
	if sender == recipient {
		return
	}

	senderBalance := world.GetBalance(sender)
	receiverBalance := world.GetBalance(recipient)
	updatedBalance := tosca.Add(receiverBalance, value)

	senderBalance = tosca.Sub(senderBalance, value)
	world.SetBalance(sender, senderBalance)
	world.SetBalance(recipient, updatedBalance)
}
