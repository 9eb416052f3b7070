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
	"fmt"

	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/holiman/uint256"
)

// State is the machine state of a single frame executed by the Evaluator.
type State struct {
	frame      floria.Frame
	jumpDests  jumpDests
	pc         int
	gas        tosca.Gas
	stack      *stack
	memory     memory
	returnData tosca.Data

	// set while the frame is suspended by a call or create request
	pending *pendingRequest
	// set once the frame has ended
	halted floria.Outcome
}

type pendingRequest struct {
	retOffset uint256.Int
	retSize   uint256.Int
	world     state.Snapshot
	substate  state.Snapshot
}

func (s *State) useGas(amount tosca.Gas) error {
	if amount < 0 || s.gas < amount {
		s.gas = 0
		return errOutOfGas
	}
	s.gas -= amount
	return nil
}

func (s *State) halt(outcome floria.Outcome) floria.Outcome {
	s.halted = outcome
	return outcome
}

// suspend opens snapshots of the world and substate covering the effects
// of the requested nested frame.
func (s *State) suspend(retOffset, retSize *uint256.Int) {
	s.pending = &pendingRequest{
		world:    s.frame.World.Begin(),
		substate: s.frame.SubState.Begin(),
	}
	if retOffset != nil {
		s.pending.retOffset = *retOffset
		s.pending.retSize = *retSize
	}
}

// resume closes the snapshots opened by suspend, keeping the effects of the
// nested frame only if it was successful, and refunds the unused gas.
func (s *State) resume(outcome floria.Outcome) *pendingRequest {
	request := s.pending
	if request == nil {
		panic("resuming a frame that is not suspended")
	}
	s.pending = nil
	if floria.IsSuccess(outcome) {
		s.frame.World.Commit(request.world)
		s.frame.SubState.Commit(request.substate)
	} else {
		s.frame.World.Rollback(request.world)
		s.frame.SubState.Rollback(request.substate)
	}
	s.gas += floria.GasLeft(outcome)
	return request
}

// Context returns the context of the frame executed by this state.
func (s *State) Context() floria.Context {
	return s.frame.Context
}

// Pc returns the position of the next instruction in the code.
func (s *State) Pc() int {
	return s.pc
}

func (s *State) Gas() tosca.Gas {
	return s.gas
}

// Stack returns a copy of the stack, ordered from bottom to top.
func (s *State) Stack() []tosca.Word {
	return s.stack.words()
}

// Memory returns a copy of the memory.
func (s *State) Memory() []byte {
	return append([]byte(nil), s.memory.store...)
}

// ReturnData returns the output of the last nested frame.
func (s *State) ReturnData() tosca.Data {
	return s.returnData
}

func (s *State) NextOperation() string {
	if s.halted != nil || s.pc >= len(s.frame.Code) {
		return STOP.String()
	}
	return OpCode(s.frame.Code[s.pc]).String()
}

func (s *State) StackTop() (tosca.Word, bool) {
	if s.stack.len() == 0 {
		return tosca.Word{}, false
	}
	return s.stack.peek().Bytes32(), true
}

func (s *State) String() string {
	return fmt.Sprintf(
		"pc: %d, op: %v, gas: %d, stack:\n%vmemory size: %d",
		s.pc, s.NextOperation(), s.gas, s.stack, len(s.memory.store),
	)
}
