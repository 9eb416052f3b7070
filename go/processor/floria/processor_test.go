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
	"bytes"
	"errors"
	"testing"

	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"go.uber.org/mock/gomock"
)

func TestProcessor_SenderPolicy(t *testing.T) {
	tests := map[string]struct {
		config      Config
		wantExists  bool
		wantBalance tosca.Value
	}{
		"disabled": {
			config: Config{},
		},
		"enabled": {
			config:      Config{AutoCreateSender: true, DefaultSenderBalance: tosca.NewValue(42)},
			wantExists:  true,
			wantBalance: tosca.NewValue(42),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			evaluator := NewMockEvaluator(ctrl)
			world := state.NewWorldState(nil)
			recipient := tosca.Address{2}

			processor := NewProcessor(evaluator, test.config)
			outcome := processor.Call(tosca.BlockParameters{}, Transaction{
				Sender:    tosca.Address{1},
				Recipient: &recipient,
				Gas:       100,
			}, world, state.NewSubState(), nil)

			if !IsSuccess(outcome) {
				t.Fatalf("call to empty account should succeed, got %v", outcome)
			}
			if want, got := test.wantExists, world.AccountExists(tosca.Address{1}); want != got {
				t.Errorf("unexpected sender existence, wanted %t, got %t", want, got)
			}
			if want, got := test.wantBalance, world.GetBalance(tosca.Address{1}); want != got {
				t.Errorf("unexpected sender balance, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestProcessor_ExistingSenderIsNotOverwritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := NewMockEvaluator(ctrl)
	world := state.NewWorldState(nil)
	world.UpsertAccount(tosca.Address{1}, 3, tosca.NewValue(7), nil, nil)
	recipient := tosca.Address{2}

	processor := NewProcessor(evaluator, Config{AutoCreateSender: true, DefaultSenderBalance: tosca.NewValue(42)})
	processor.Call(tosca.BlockParameters{}, Transaction{Sender: tosca.Address{1}, Recipient: &recipient}, world, state.NewSubState(), nil)

	if want, got := tosca.NewValue(7), world.GetBalance(tosca.Address{1}); want != got {
		t.Errorf("unexpected sender balance, wanted %v, got %v", want, got)
	}
}

func TestProcessor_CallSeedsTouchedSetAndRunsOutermostFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := NewMockEvaluator(ctrl)
	world := state.NewWorldState(nil)
	sender, recipient := tosca.Address{1}, tosca.Address{2}
	world.UpsertAccount(recipient, 0, tosca.Value{}, nil, tosca.Code{0x00})
	world.SetBalance(sender, tosca.NewValue(10))
	block := tosca.BlockParameters{BlockNumber: 5}

	evaluator.EXPECT().Start(gomock.Any()).DoAndReturn(func(frame Frame) State {
		want := Context{
			Kind:        tosca.Call,
			Sender:      sender,
			Origin:      sender,
			Recipient:   recipient,
			CodeAddress: recipient,
			Value:       tosca.NewValue(4),
			Input:       tosca.Data{1},
			GasPrice:    tosca.NewValue(2),
			Block:       block,
			Depth:       1,
		}
		if got := frame.Context; !equalContexts(want, got) {
			t.Errorf("unexpected context, wanted %v, got %v", want, got)
		}
		if !world.IsTouched(sender) || !world.IsTouched(recipient) {
			t.Errorf("sender and recipient should be touched")
		}
		return "s0"
	})
	evaluator.EXPECT().Step("s0").Return(Returns{Data: tosca.Data{9}, GasLeft: 3})

	processor := NewProcessor(evaluator, Config{})
	outcome := processor.Call(block, Transaction{
		Sender:    sender,
		Recipient: &recipient,
		Value:     tosca.NewValue(4),
		Input:     tosca.Data{1},
		Gas:       100,
		GasPrice:  tosca.NewValue(2),
	}, world, state.NewSubState(), nil)

	if want, got := (tosca.Data{9}), OutputOf(outcome); !bytes.Equal(want, got) {
		t.Errorf("unexpected output, wanted %x, got %x", want, got)
	}
	if want, got := tosca.NewValue(6), world.GetBalance(sender); want != got {
		t.Errorf("unexpected sender balance, wanted %v, got %v", want, got)
	}
	if want, got := tosca.NewValue(4), world.GetBalance(recipient); want != got {
		t.Errorf("unexpected recipient balance, wanted %v, got %v", want, got)
	}
}

func TestProcessor_FailedTransactionsAreRolledBack(t *testing.T) {
	tests := map[string]Outcome{
		"reverts": Reverts{Data: tosca.Data{1}},
		"invalid": Invalid{Err: errors.New("failed")},
	}

	for name, result := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			evaluator := NewMockEvaluator(ctrl)
			world := state.NewWorldState(nil)
			substate := state.NewSubState()
			sender, recipient := tosca.Address{1}, tosca.Address{2}
			world.UpsertAccount(recipient, 0, tosca.Value{}, nil, tosca.Code{0x00})
			world.SetBalance(sender, tosca.NewValue(10))

			evaluator.EXPECT().Start(gomock.Any()).Return("s0")
			evaluator.EXPECT().Step("s0").DoAndReturn(func(State) Step {
				world.SetStorage(recipient, tosca.Key{1}, tosca.Word{1})
				substate.AddLog(tosca.Log{Address: recipient})
				return result
			})

			processor := NewProcessor(evaluator, Config{})
			receipt := processor.Run(tosca.BlockParameters{}, Transaction{
				Sender:    sender,
				Recipient: &recipient,
				Value:     tosca.NewValue(4),
			}, world, substate, nil)

			if receipt.Success() {
				t.Errorf("transaction should fail")
			}
			if want, got := tosca.NewValue(10), world.GetBalance(sender); want != got {
				t.Errorf("value transfer not rolled back, wanted %v, got %v", want, got)
			}
			if want, got := (tosca.Word{}), world.GetStorage(recipient, tosca.Key{1}); want != got {
				t.Errorf("storage update not rolled back, wanted %v, got %v", want, got)
			}
			if want, got := 0, len(receipt.Logs); want != got {
				t.Errorf("logs not rolled back, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestProcessor_InsufficientSenderBalanceIsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := NewMockEvaluator(ctrl)
	world := state.NewWorldState(nil)
	recipient := tosca.Address{2}

	outcome := NewProcessor(evaluator, Config{}).Call(tosca.BlockParameters{}, Transaction{
		Sender:    tosca.Address{1},
		Recipient: &recipient,
		Value:     tosca.NewValue(1),
	}, world, state.NewSubState(), nil)

	invalid, ok := outcome.(Invalid)
	if !ok || !errors.Is(invalid.Err, ErrInsufficientBalance) {
		t.Errorf("unexpected outcome, wanted %v, got %v", ErrInsufficientBalance, outcome)
	}
}

func TestProcessor_CreateReportsContractAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := NewMockEvaluator(ctrl)
	world := state.NewWorldState(nil)
	substate := state.NewSubState()
	sender := tosca.Address{1}
	world.SetNonce(sender, 3)
	address := CreateAddress(sender, 3)

	evaluator.EXPECT().Start(gomock.Any()).DoAndReturn(func(frame Frame) State {
		if want, got := 1, frame.Context.Depth; want != got {
			t.Errorf("unexpected depth, wanted %d, got %d", want, got)
		}
		return "s0"
	})
	evaluator.EXPECT().Step("s0").DoAndReturn(func(State) Step {
		substate.AddLog(tosca.Log{Address: address})
		return Returns{Data: tosca.Data{0x00}}
	})

	receipt := NewProcessor(evaluator, Config{}).Run(tosca.BlockParameters{}, Transaction{
		Sender: sender,
		Input:  tosca.Data{0x60, 0x00},
	}, world, substate, nil)

	if !receipt.Success() {
		t.Fatalf("creation failed: %v", receipt.Outcome)
	}
	if receipt.ContractAddress == nil || *receipt.ContractAddress != address {
		t.Errorf("unexpected contract address, wanted %v, got %v", address, receipt.ContractAddress)
	}
	if want, got := 1, len(receipt.Logs); want != got {
		t.Errorf("unexpected number of logs, wanted %d, got %d", want, got)
	}
	if want, got := uint64(4), world.GetNonce(sender); want != got {
		t.Errorf("unexpected sender nonce, wanted %d, got %d", want, got)
	}
	if want, got := "\x00", string(world.GetCode(address)); want != got {
		t.Errorf("unexpected code, wanted %x, got %x", want, got)
	}
}

func TestProcessor_MissingSubStateIsCreated(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := NewMockEvaluator(ctrl)
	world := state.NewWorldState(nil)
	processor := NewProcessor(evaluator, Config{})

	recipient := tosca.Address{2}
	receipt := processor.Run(tosca.BlockParameters{}, Transaction{
		Sender:    tosca.Address{1},
		Recipient: &recipient,
	}, world, nil, nil)
	if !receipt.Success() {
		t.Errorf("unexpected outcome of call, got %v", receipt.Outcome)
	}

	evaluator.EXPECT().Start(gomock.Any()).DoAndReturn(func(frame Frame) State {
		if frame.SubState == nil {
			t.Errorf("init code started without a sub-state")
		}
		return "init"
	})
	evaluator.EXPECT().Step("init").Return(Returns{})

	receipt = processor.Run(tosca.BlockParameters{}, Transaction{
		Sender: tosca.Address{1},
	}, world, nil, nil)
	if !receipt.Success() || receipt.ContractAddress == nil {
		t.Errorf("unexpected receipt of creation, got %v", receipt)
	}
}
