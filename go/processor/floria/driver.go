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
	"fmt"

	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/ethereum/go-ethereum/log"
)

// Driver runs frames to completion, recursively running the child frames
// requested by the evaluator. The call depth is not limited by the driver;
// evaluators are expected to end frames exceeding their depth limit with
// an Invalid outcome.
type Driver struct {
	evaluator Evaluator
	logger    log.Logger
}

func NewDriver(evaluator Evaluator) *Driver {
	return &Driver{
		evaluator: evaluator,
		logger:    log.New("module", "floria"),
	}
}

// Run executes the given frame at the given depth and returns its outcome.
// Mutations of the world state by child frames are visible to the parent as
// soon as the child returns, regardless of the child's outcome. The tracer
// may be nil. A frame without a SubState gets a fresh one, which is then
// shared with all of its child frames.
func (d *Driver) Run(depth int, tracer Tracer, frame Frame) Outcome {
	if tracer == nil {
		tracer = nopTracer{}
	}
	if frame.SubState == nil {
		frame.SubState = state.NewSubState()
	}
	d.logger.Trace("Entering frame", "depth", depth, "kind", frame.Context.Kind,
		"recipient", frame.Context.Recipient, "gas", frame.Gas)

	current := d.evaluator.Start(frame)
	for {
		tracer.Step(depth, Continuing{State: current})
		switch next := d.evaluator.Step(current).(type) {
		case Continuing:
			current = next.State
		case CallRequest:
			outcome := d.executeCall(depth, tracer, &frame, next)
			current = d.evaluator.ResumeCall(next.State, outcome)
		case CreateRequest:
			address, outcome := d.executeCreate(depth, tracer, &frame, next)
			current = d.evaluator.ResumeCreate(next.State, address, outcome)
		case Returns:
			return d.finish(depth, tracer, next)
		case Reverts:
			return d.finish(depth, tracer, next)
		case Invalid:
			return d.finish(depth, tracer, next)
		default:
			panic(fmt.Sprintf("unsupported step type %T", next))
		}
	}
}

func (d *Driver) finish(depth int, tracer Tracer, outcome Outcome) Outcome {
	tracer.Step(depth, outcome)
	if invalid, ok := outcome.(Invalid); ok {
		d.logger.Trace("Leaving frame", "depth", depth, "outcome", "invalid", "err", invalid.Err)
	} else {
		d.logger.Trace("Leaving frame", "depth", depth, "success", IsSuccess(outcome), "gasLeft", GasLeft(outcome))
	}
	return outcome
}

type nopTracer struct{}

func (nopTracer) Step(int, Step) {}
