// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package tracing provides observers for the execution driver.
package tracing

import (
	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// Inspectable is implemented by machine states able to describe their
// next instruction. Tracers use it to produce more detailed output.
type Inspectable interface {
	NextOperation() string
	Gas() tosca.Gas
	StackTop() (tosca.Word, bool)
}

// Multi creates a tracer forwarding all steps to the given tracers in
// order.
func Multi(tracers ...floria.Tracer) floria.Tracer {
	return multi(tracers)
}

type multi []floria.Tracer

func (m multi) Step(depth int, step floria.Step) {
	for _, tracer := range m {
		tracer.Step(depth, step)
	}
}

// Entry is a single observation of a Recorder.
type Entry struct {
	Depth int
	Step  floria.Step
}

// Recorder keeps the sequence of observed steps. States of Continuing steps
// are recorded by reference, not copied. For evaluators updating their
// states in place, like stepvm, all Continuing entries of a frame therefore
// show the latest state of that frame rather than the state at the time of
// the observation.
type Recorder struct {
	entries []Entry
}

func (r *Recorder) Step(depth int, step floria.Step) {
	r.entries = append(r.entries, Entry{Depth: depth, Step: step})
}

func (r *Recorder) Entries() []Entry {
	return r.entries
}

// LastState returns the most recent continuing state observed at the
// given depth.
func (r *Recorder) LastState(depth int) (floria.State, bool) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if entry.Depth != depth {
			continue
		}
		if continuing, ok := entry.Step.(floria.Continuing); ok {
			return continuing.State, true
		}
	}
	return nil, false
}

func (r *Recorder) Reset() {
	r.entries = r.entries[:0]
}
