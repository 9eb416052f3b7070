// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package examples provides contracts with a (int)->int entry point and
// reference implementations of their functions. They are used to check and
// benchmark evaluators running on the floria processor.
package examples

import (
	"fmt"
	"math"

	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// Example is an executable description of a contract and an entry point with a (int)->int signature.
type Example struct {
	Name      string
	Code      tosca.Code
	function  uint32        // identifier of the function in the contract to be called
	reference func(int) int // a reference function computing the same function
}

type Result struct {
	Result  int
	UsedGas tosca.Gas
}

var (
	senderAddress   = tosca.Address{1}
	contractAddress = tosca.Address{2}
)

// All returns all available examples.
func All() []Example {
	return []Example{
		GetArithmeticExample(),
		GetSha3Example(),
		GetGasBurnerExample(),
		GetStaticOverheadExample(),
		GetJumpdestAnalysisExample(),
		GetStopAnalysisExample(),
		GetPush1AnalysisExample(),
		GetPush32AnalysisExample(),
	}
}

// Lookup returns the example with the given name.
func Lookup(name string) (Example, bool) {
	for _, example := range All() {
		if example.Name == name {
			return example, true
		}
	}
	return Example{}, false
}

// RunOn runs this example with the given argument using the given evaluator.
// The contract is called in a fresh world state holding only the contract.
func (e *Example) RunOn(evaluator floria.Evaluator, argument int) (Result, error) {
	const initialGas = math.MaxInt64
	world := state.NewWorldState(map[tosca.Address]*state.Account{
		contractAddress: {Code: e.Code},
	})
	processor := floria.NewProcessor(evaluator, floria.Config{AutoCreateSender: true})
	recipient := contractAddress
	receipt := processor.Run(
		tosca.BlockParameters{},
		floria.Transaction{
			Sender:    senderAddress,
			Recipient: &recipient,
			Input:     encodeArgument(e.function, argument),
			Gas:       initialGas,
		},
		world,
		state.NewSubState(),
		nil,
	)

	returns, ok := receipt.Outcome.(floria.Returns)
	if !ok {
		return Result{}, fmt.Errorf("execution of %s did not return: %v", e.Name, receipt.Outcome)
	}
	result, err := decodeOutput(returns.Data)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Result:  result,
		UsedGas: initialGas - returns.GasLeft,
	}, nil
}

// RunReference runs the reference function of this example to produce the expected result.
func (e *Example) RunReference(argument int) int {
	return e.reference(argument)
}

func encodeArgument(function uint32, arg int) tosca.Data {
	// see details of argument encoding: t.ly/kBl6
	data := make(tosca.Data, 4+32) // parameter is padded up to 32 bytes

	// encode function selector in big-endian format
	data[0] = byte(function >> 24)
	data[1] = byte(function >> 16)
	data[2] = byte(function >> 8)
	data[3] = byte(function)

	// encode argument as a big-endian value
	data[4+28] = byte(arg >> 24)
	data[5+28] = byte(arg >> 16)
	data[6+28] = byte(arg >> 8)
	data[7+28] = byte(arg)

	return data
}

func decodeOutput(output []byte) (int, error) {
	if len(output) != 32 {
		return 0, fmt.Errorf("unexpected length of output; wanted 32, got %d", len(output))
	}
	return (int(output[28]) << 24) | (int(output[29]) << 16) | (int(output[30]) << 8) | (int(output[31]) << 0), nil
}
