// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stepvm

import (
	"bytes"
	"testing"

	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/Fantom-foundation/Floria/go/tracing"
	"go.uber.org/mock/gomock"
)

func newTestEvaluator(t *testing.T, config Config) *Evaluator {
	t.Helper()
	evaluator, err := NewEvaluator(config)
	if err != nil {
		t.Fatalf("failed to create evaluator: %v", err)
	}
	return evaluator
}

func TestEvaluator_NegativeStepLimitIsRejected(t *testing.T) {
	if _, err := NewEvaluator(Config{StepLimit: -1}); err == nil {
		t.Errorf("expected an error for a negative step limit")
	}
}

func TestEvaluator_StepLimitBoundsInstructionsPerStep(t *testing.T) {
	evaluator := newTestEvaluator(t, Config{StepLimit: 1})
	s := evaluator.Start(newTestFrame(newCode(PUSH1, 1, PUSH1, 2, ADD), 100))

	for i, wantPc := range []int{2, 4, 5} {
		step := evaluator.Step(s)
		if _, ok := step.(floria.Continuing); !ok {
			t.Fatalf("unexpected step %d, wanted Continuing, got %v", i, step)
		}
		if want, got := wantPc, s.(*State).Pc(); want != got {
			t.Errorf("unexpected pc after step %d, wanted %d, got %d", i, want, got)
		}
	}
	result, ok := evaluator.Step(s).(floria.Returns)
	if !ok {
		t.Fatalf("unexpected final step, wanted Returns")
	}
	if want, got := tosca.Gas(91), result.GasLeft; want != got {
		t.Errorf("unexpected gas left, wanted %d, got %d", want, got)
	}
}

func TestEvaluator_FramesBeyondMaxDepthAreInvalid(t *testing.T) {
	tests := map[string]struct {
		depth int
		valid bool
	}{
		"first":  {1, true},
		"max":    {MaxCallDepth, true},
		"beyond": {MaxCallDepth + 1, false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			frame := newTestFrame(newCode(STOP), 100)
			frame.Context.Depth = test.depth
			_, step := runFrame(t, frame)
			invalid, isInvalid := step.(floria.Invalid)
			if want, got := test.valid, !isInvalid; want != got {
				t.Fatalf("unexpected validity, wanted %t, got %t (%v)", want, got, step)
			}
			if isInvalid && invalid.Err != floria.ErrCallDepthExceeded {
				t.Errorf("unexpected error, got %v", invalid.Err)
			}
			if isInvalid && invalid.GasLeft != 100 {
				t.Errorf("gas of frames beyond the max depth should be returned, got %d", invalid.GasLeft)
			}
		})
	}
}

func TestEvaluator_MissingSubStateIsCreated(t *testing.T) {
	frame := newTestFrame(newCode(PUSH1, 0xCC, BALANCE), 10_000)
	frame.SubState = nil
	_, step := runFrame(t, frame)
	if _, ok := step.(floria.Returns); !ok {
		t.Errorf("unexpected step, wanted Returns, got %v", step)
	}
}

func TestEvaluator_StateIsInspectable(t *testing.T) {
	evaluator := newTestEvaluator(t, Config{StepLimit: 1})
	s := evaluator.Start(newTestFrame(newCode(PUSH1, 7, POP), 100)).(*State)

	var inspectable tracing.Inspectable = s
	if want, got := "PUSH1", inspectable.NextOperation(); want != got {
		t.Errorf("unexpected next operation, wanted %s, got %s", want, got)
	}
	if _, ok := inspectable.StackTop(); ok {
		t.Errorf("empty stack should have no top")
	}
	evaluator.Step(s)
	if want, got := "POP", inspectable.NextOperation(); want != got {
		t.Errorf("unexpected next operation, wanted %s, got %s", want, got)
	}
	if top, ok := inspectable.StackTop(); !ok || top != (tosca.Word{31: 7}) {
		t.Errorf("unexpected stack top %v", top)
	}
	if want, got := tosca.Gas(97), inspectable.Gas(); want != got {
		t.Errorf("unexpected gas, wanted %d, got %d", want, got)
	}
}

func TestEvaluator_ReturnIsTracedOnceBeforeAndOnceAfterTheStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := floria.NewMockTracer(ctrl)
	frame := newTestFrame(newCode(PUSH1, 1, PUSH1, 0, RETURN), 100)

	gomock.InOrder(
		tracer.EXPECT().Step(1, gomock.AssignableToTypeOf(floria.Continuing{})),
		tracer.EXPECT().Step(1, floria.Returns{Data: tosca.Data{0}, GasLeft: 91, World: frame.World}),
	)

	driver := floria.NewDriver(newTestEvaluator(t, Config{}))
	outcome := driver.Run(1, tracer, frame)
	result, ok := outcome.(floria.Returns)
	if !ok {
		t.Fatalf("unexpected outcome, wanted Returns, got %v", outcome)
	}
	if want, got := (tosca.Data{0}), result.Data; !bytes.Equal(want, got) {
		t.Errorf("unexpected output, wanted %x, got %x", want, got)
	}
}

var (
	callerAddress = tosca.Address{19: 0x10}
	calleeAddress = tosca.Address{19: 0x20}
)

func TestEndToEnd_ContractAccountsAreNotPrecompiled(t *testing.T) {
	for _, address := range []tosca.Address{callerAddress, calleeAddress, testSender} {
		if precompiled.IsPrecompiled(address) {
			t.Errorf("address %v is occupied by a precompiled contract", address)
		}
	}
}

// callCode calls the callee with the given op code, stores the callee's
// output at memory offset 0 and the success flag at offset 32, and returns
// the first 64 bytes of memory.
func callCode(op OpCode, value int) tosca.Code {
	code := newCode(PUSH1, 32, PUSH0, PUSH0, PUSH0)
	if op == CALL || op == CALLCODE {
		code = append(code, newCode(PUSH1, value)...)
	}
	return append(code, newCode(
		PUSH1, int(calleeAddress[19]), GAS, op,
		PUSH1, 32, MSTORE,
		PUSH1, 64, PUSH0, RETURN,
	)...)
}

// revertingCode reverts with 0xDEAD.
var revertingCode = newCode(PUSH2, 0xDE, 0xAD, PUSH0, MSTORE, PUSH1, 2, PUSH1, 30, REVERT)

// storingCode writes 1 to slot 1 and returns the caller's address.
var storingCode = newCode(PUSH1, 1, PUSH1, 1, SSTORE, CALLER, PUSH0, MSTORE, PUSH1, 32, PUSH0, RETURN)

func runTransaction(t *testing.T, world *state.WorldState, tracer floria.Tracer) floria.Receipt {
	t.Helper()
	processor := floria.NewProcessor(
		newTestEvaluator(t, Config{}),
		floria.Config{AutoCreateSender: true, DefaultSenderBalance: tosca.NewValue(1_000_000)},
	)
	recipient := callerAddress
	return processor.Run(
		tosca.BlockParameters{},
		floria.Transaction{Sender: testSender, Recipient: &recipient, Gas: 1_000_000},
		world,
		state.NewSubState(),
		tracer,
	)
}

func TestEndToEnd_RevertOfNestedCallIsReportedToCaller(t *testing.T) {
	world := state.NewWorldState(map[tosca.Address]*state.Account{
		callerAddress: {Code: callCode(CALL, 0)},
		calleeAddress: {Code: revertingCode},
	})
	recorder := &tracing.Recorder{}
	receipt := runTransaction(t, world, recorder)

	result, ok := receipt.Outcome.(floria.Returns)
	if !ok {
		t.Fatalf("unexpected outcome, wanted Returns, got %v", receipt.Outcome)
	}
	if want, got := 64, len(result.Data); want != got {
		t.Fatalf("unexpected output length, wanted %d, got %d", want, got)
	}
	if want, got := (tosca.Data{0xDE, 0xAD}), result.Data[:2]; !bytes.Equal(want, got) {
		t.Errorf("unexpected output of callee, wanted %x, got %x", want, got)
	}
	if result.Data[63] != 0 {
		t.Errorf("call of reverting callee should report failure")
	}

	found := false
	for _, entry := range recorder.Entries() {
		if reverts, ok := entry.Step.(floria.Reverts); ok {
			found = true
			if want, got := 2, entry.Depth; want != got {
				t.Errorf("unexpected depth of revert, wanted %d, got %d", want, got)
			}
			if want, got := (tosca.Data{0xDE, 0xAD}), reverts.Data; !bytes.Equal(want, got) {
				t.Errorf("unexpected revert data, wanted %x, got %x", want, got)
			}
		}
		if _, ok := entry.Step.(floria.Invalid); ok {
			t.Errorf("unexpected invalid step at depth %d", entry.Depth)
		}
	}
	if !found {
		t.Errorf("revert of callee was not traced")
	}
}

func TestEndToEnd_EffectsOfFailedNestedFramesAreRolledBack(t *testing.T) {
	slot := tosca.Key{31: 1}
	tests := map[string]struct {
		caller      tosca.Code
		callee      tosca.Code
		success     bool
		storageAt   tosca.Address
		wantStorage tosca.Word
	}{
		"call keeps storage": {
			caller:      callCode(CALL, 0),
			callee:      storingCode,
			success:     true,
			storageAt:   calleeAddress,
			wantStorage: tosca.Word{31: 1},
		},
		"revert discards storage": {
			caller:    callCode(CALL, 0),
			callee:    append(newCode(PUSH1, 1, PUSH1, 1, SSTORE), revertingCode...),
			storageAt: calleeAddress,
		},
		"static call cannot write": {
			caller:    callCode(STATICCALL, 0),
			callee:    storingCode,
			storageAt: calleeAddress,
		},
		"delegate call writes to caller": {
			caller:      callCode(DELEGATECALL, 0),
			callee:      storingCode,
			success:     true,
			storageAt:   callerAddress,
			wantStorage: tosca.Word{31: 1},
		},
		"call code writes to caller": {
			caller:      callCode(CALLCODE, 0),
			callee:      storingCode,
			success:     true,
			storageAt:   callerAddress,
			wantStorage: tosca.Word{31: 1},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			world := state.NewWorldState(map[tosca.Address]*state.Account{
				callerAddress: {Code: test.caller},
				calleeAddress: {Code: test.callee},
			})
			receipt := runTransaction(t, world, nil)
			result, ok := receipt.Outcome.(floria.Returns)
			if !ok {
				t.Fatalf("unexpected outcome, wanted Returns, got %v", receipt.Outcome)
			}
			if want, got := test.success, result.Data[63] == 1; want != got {
				t.Errorf("unexpected success flag, wanted %t, got %t", want, got)
			}
			if want, got := test.wantStorage, world.GetStorage(test.storageAt, slot); want != got {
				t.Errorf("unexpected storage, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestEndToEnd_DelegateCallKeepsSender(t *testing.T) {
	world := state.NewWorldState(map[tosca.Address]*state.Account{
		callerAddress: {Code: callCode(DELEGATECALL, 0)},
		calleeAddress: {Code: storingCode},
	})
	receipt := runTransaction(t, world, nil)
	result := receipt.Outcome.(floria.Returns)
	if want, got := testSender, tosca.AddressFromWord(tosca.Word(result.Data[:32])); want != got {
		t.Errorf("unexpected caller in delegate call, wanted %v, got %v", want, got)
	}
}

func TestEndToEnd_ValueIsTransferredByCall(t *testing.T) {
	world := state.NewWorldState(map[tosca.Address]*state.Account{
		callerAddress: {Balance: tosca.NewValue(100), Code: callCode(CALL, 40)},
	})
	receipt := runTransaction(t, world, nil)
	if !receipt.Success() {
		t.Fatalf("unexpected outcome %v", receipt.Outcome)
	}
	if want, got := tosca.NewValue(60), world.GetBalance(callerAddress); want != got {
		t.Errorf("unexpected caller balance, wanted %v, got %v", want, got)
	}
	if want, got := tosca.NewValue(40), world.GetBalance(calleeAddress); want != got {
		t.Errorf("unexpected callee balance, wanted %v, got %v", want, got)
	}
}

func TestEndToEnd_CallWithInsufficientBalanceKeepsGas(t *testing.T) {
	world := state.NewWorldState(map[tosca.Address]*state.Account{
		callerAddress: {Code: callCode(CALL, 40)},
	})
	receipt := runTransaction(t, world, nil)
	result, ok := receipt.Outcome.(floria.Returns)
	if !ok {
		t.Fatalf("unexpected outcome, wanted Returns, got %v", receipt.Outcome)
	}
	if len(result.Data) != 64 || result.Data[63] != 0 {
		t.Fatalf("call without sufficient balance should fail, got %x", result.Data)
	}
	if got := result.GasLeft; got < 900_000 {
		t.Errorf("gas offered to the failed call was not returned, gas left %d", got)
	}
	if want, got := (tosca.Value{}), world.GetBalance(calleeAddress); want != got {
		t.Errorf("unexpected callee balance, wanted %v, got %v", want, got)
	}
}

func TestEndToEnd_RecursionEndsAtMaxDepth(t *testing.T) {
	// calls itself with all available gas
	code := newCode(PUSH0, PUSH0, PUSH0, PUSH0, PUSH0, ADDRESS, GAS, CALL)
	world := state.NewWorldState(map[tosca.Address]*state.Account{
		callerAddress: {Code: code},
	})
	statistics := tracing.NewStatistics()
	processor := floria.NewProcessor(newTestEvaluator(t, Config{}), floria.Config{AutoCreateSender: true})
	recipient := callerAddress
	receipt := processor.Run(
		tosca.BlockParameters{},
		floria.Transaction{Sender: testSender, Recipient: &recipient, Gas: 1 << 50},
		world,
		state.NewSubState(),
		statistics,
	)
	if !receipt.Success() {
		t.Fatalf("unexpected outcome %v", receipt.Outcome)
	}
	if want, got := MaxCallDepth+1, statistics.MaxDepth(); want != got {
		t.Errorf("unexpected maximum depth, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1), statistics.Outcomes("invalid"); want != got {
		t.Errorf("unexpected number of invalid frames, wanted %d, got %d", want, got)
	}
}

// runtimeCode returns 42 as a 32 byte word.
var runtimeCode = newCode(PUSH1, 42, PUSH0, MSTORE, PUSH1, 32, PUSH0, RETURN)

// initCode deploys runtimeCode.
var initCode = append(
	newCode(PUSH1+OpCode(len(runtimeCode)-1), []byte(runtimeCode), PUSH0, MSTORE),
	newCode(PUSH1, len(runtimeCode), PUSH1, 32-len(runtimeCode), RETURN)...,
)

func TestEndToEnd_ContractsAreCreatedAndCalled(t *testing.T) {
	world := state.NewWorldState(nil)
	processor := floria.NewProcessor(
		newTestEvaluator(t, Config{}),
		floria.Config{AutoCreateSender: true},
	)

	receipt := processor.Run(
		tosca.BlockParameters{},
		floria.Transaction{Sender: testSender, Input: tosca.Data(initCode), Gas: 1_000_000},
		world,
		state.NewSubState(),
		nil,
	)
	if !receipt.Success() || receipt.ContractAddress == nil {
		t.Fatalf("unexpected receipt %v", receipt)
	}
	address := *receipt.ContractAddress
	if want, got := floria.CreateAddress(testSender, 0), address; want != got {
		t.Errorf("unexpected contract address, wanted %v, got %v", want, got)
	}
	if want, got := runtimeCode, world.GetCode(address); !bytes.Equal(want, got) {
		t.Errorf("unexpected deployed code, wanted %x, got %x", want, got)
	}

	receipt = processor.Run(
		tosca.BlockParameters{},
		floria.Transaction{Sender: testSender, Recipient: &address, Gas: 1_000_000},
		world,
		state.NewSubState(),
		nil,
	)
	result, ok := receipt.Outcome.(floria.Returns)
	if !ok {
		t.Fatalf("unexpected outcome, wanted Returns, got %v", receipt.Outcome)
	}
	if want, got := (tosca.Data{31: 42}), result.Data; !bytes.Equal(want, got) {
		t.Errorf("unexpected output, wanted %x, got %x", want, got)
	}
}

func TestEndToEnd_CreateInstructionsPushNewAddress(t *testing.T) {
	salt := tosca.Hash{31: 5}
	tests := map[string]struct {
		create OpCode
		want   tosca.Address
	}{
		"create":  {CREATE, floria.CreateAddress(callerAddress, 1)},
		"create2": {CREATE2, floria.Create2Address(callerAddress, salt, initCode)},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// stores the init code at memory offset 0 and creates the contract
			factory := newCode(PUSH1+OpCode(len(initCode)-1), []byte(initCode), PUSH0, MSTORE)
			if test.create == CREATE2 {
				factory = append(factory, newCode(PUSH1, 5)...)
			}
			factory = append(factory, newCode(
				PUSH1, len(initCode), PUSH1, 32-len(initCode), PUSH0, test.create,
				PUSH0, MSTORE, PUSH1, 32, PUSH0, RETURN,
			)...)
			world := state.NewWorldState(map[tosca.Address]*state.Account{
				callerAddress: {Nonce: 1, Code: factory},
			})

			receipt := runTransaction(t, world, nil)
			result, ok := receipt.Outcome.(floria.Returns)
			if !ok {
				t.Fatalf("unexpected outcome, wanted Returns, got %v", receipt.Outcome)
			}
			if want, got := test.want, tosca.AddressFromWord(tosca.Word(result.Data)); want != got {
				t.Errorf("unexpected created address, wanted %v, got %v", want, got)
			}
			if want, got := runtimeCode, world.GetCode(test.want); !bytes.Equal(want, got) {
				t.Errorf("unexpected deployed code, wanted %x, got %x", want, got)
			}
			if want, got := uint64(2), world.GetNonce(callerAddress); want != got {
				t.Errorf("unexpected factory nonce, wanted %d, got %d", want, got)
			}
		})
	}
}
