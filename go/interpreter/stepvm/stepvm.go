// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package stepvm provides a compact reference implementation of the step
// evaluator consumed by the floria execution driver. It covers the
// instruction set needed to run ordinary contracts including nested calls
// and contract creations, uses simplified gas costs, and reverts the effects
// of failed nested frames using the world state's snapshot facilities.
package stepvm

import (
	"fmt"

	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// MaxCallDepth is the maximum depth of a frame. Frames started beyond this
// depth end immediately with floria.ErrCallDepthExceeded.
const MaxCallDepth = 1024

// Config summarizes the configuration options of the evaluator.
type Config struct {
	// StepLimit is the maximum number of instructions executed by a single
	// Step call. With zero, Step runs until the frame suspends or halts.
	StepLimit int
	// JumpCacheSize is the number of jump destination analyses retained
	// between frames. Zero selects a default of 4096.
	JumpCacheSize int
}

const defaultJumpCacheSize = 4096

// Evaluator implements floria.Evaluator. The states it produces are of type
// *State and are updated in place.
type Evaluator struct {
	config    Config
	jumpDests *jumpDestCache
}

var _ floria.Evaluator = (*Evaluator)(nil)

func NewEvaluator(config Config) (*Evaluator, error) {
	if config.StepLimit < 0 {
		return nil, fmt.Errorf("invalid step limit: %d", config.StepLimit)
	}
	size := config.JumpCacheSize
	if size == 0 {
		size = defaultJumpCacheSize
	}
	cache, err := newJumpDestCache(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create jump destination cache: %w", err)
	}
	return &Evaluator{config: config, jumpDests: cache}, nil
}

func (e *Evaluator) Start(frame floria.Frame) floria.State {
	if frame.SubState == nil {
		frame.SubState = state.NewSubState()
	}
	s := &State{
		frame: frame,
		gas:   frame.Gas,
		stack: &stack{},
	}
	if frame.Context.Depth > MaxCallDepth {
		s.halted = floria.Invalid{Err: floria.ErrCallDepthExceeded, GasLeft: frame.Gas}
		return s
	}
	s.jumpDests = e.jumpDests.get(frame.Code)
	frame.SubState.AccessAccount(frame.Context.Sender)
	frame.SubState.AccessAccount(frame.Context.Recipient)
	return s
}

func (e *Evaluator) Step(current floria.State) floria.Step {
	s := current.(*State)
	for steps := 0; e.config.StepLimit == 0 || steps < e.config.StepLimit; steps++ {
		if s.halted != nil {
			return s.halted
		}
		if s.pc >= len(s.frame.Code) {
			return s.halt(floria.Returns{GasLeft: s.gas, World: s.frame.World})
		}
		next, err := execute(s, OpCode(s.frame.Code[s.pc]))
		if err != nil {
			return s.halt(floria.Invalid{Err: err})
		}
		switch next := next.(type) {
		case nil:
			continue
		case floria.Outcome:
			return s.halt(next)
		default:
			return next
		}
	}
	return floria.Continuing{State: s}
}

func (e *Evaluator) ResumeCall(current floria.State, outcome floria.Outcome) floria.State {
	s := current.(*State)
	call := s.resume(outcome)

	output := floria.OutputOf(outcome)
	s.returnData = output
	if !call.retSize.IsZero() {
		offset := call.retOffset.Uint64()
		copy(s.memory.store[offset:offset+call.retSize.Uint64()], output)
	}

	success := s.stack.pushUndefined()
	if floria.IsSuccess(outcome) {
		success.SetOne()
	} else {
		success.Clear()
	}
	return s
}

func (e *Evaluator) ResumeCreate(current floria.State, address tosca.Address, outcome floria.Outcome) floria.State {
	s := current.(*State)
	s.resume(outcome)

	result := s.stack.pushUndefined()
	s.returnData = nil
	switch outcome := outcome.(type) {
	case floria.Returns:
		result.SetBytes20(address[:])
	case floria.Reverts:
		result.Clear()
		s.returnData = outcome.Data
	default:
		result.Clear()
	}
	return s
}
