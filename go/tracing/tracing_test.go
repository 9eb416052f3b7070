// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tracing

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"go.uber.org/mock/gomock"
)

type testState struct {
	op    string
	gas   tosca.Gas
	stack []tosca.Word
}

func (s testState) NextOperation() string { return s.op }
func (s testState) Gas() tosca.Gas       { return s.gas }

func (s testState) StackTop() (tosca.Word, bool) {
	if len(s.stack) == 0 {
		return tosca.Word{}, false
	}
	return s.stack[len(s.stack)-1], true
}

func TestMulti_ForwardsStepsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := floria.NewMockTracer(ctrl)
	second := floria.NewMockTracer(ctrl)

	step := floria.Returns{GasLeft: 1}
	gomock.InOrder(
		first.EXPECT().Step(2, step),
		second.EXPECT().Step(2, step),
	)

	Multi(first, second).Step(2, step)
}

func TestRecorder_LastStateReturnsMostRecentContinuingStateOfDepth(t *testing.T) {
	recorder := &Recorder{}
	if _, found := recorder.LastState(1); found {
		t.Errorf("empty recorder should not have a state")
	}

	recorder.Step(1, floria.Continuing{State: "a"})
	recorder.Step(2, floria.Continuing{State: "b"})
	recorder.Step(2, floria.Returns{})
	recorder.Step(1, floria.Continuing{State: "c"})
	recorder.Step(1, floria.Returns{})

	state, found := recorder.LastState(1)
	if !found || state != "c" {
		t.Errorf("unexpected state at depth 1, wanted c, got %v", state)
	}
	state, found = recorder.LastState(2)
	if !found || state != "b" {
		t.Errorf("unexpected state at depth 2, wanted b, got %v", state)
	}
	if want, got := 5, len(recorder.Entries()); want != got {
		t.Errorf("unexpected number of entries, wanted %d, got %d", want, got)
	}

	recorder.Reset()
	if want, got := 0, len(recorder.Entries()); want != got {
		t.Errorf("unexpected number of entries after reset, wanted %d, got %d", want, got)
	}
}

func TestRecorder_ContinuingStatesAreRecordedByReference(t *testing.T) {
	recorder := &Recorder{}
	state := &testState{op: "PUSH1", gas: 10}
	recorder.Step(1, floria.Continuing{State: state})
	state.op, state.gas = "STOP", 7
	recorder.Step(1, floria.Continuing{State: state})

	entries := recorder.Entries()
	if want, got := 2, len(entries); want != got {
		t.Fatalf("unexpected number of entries, wanted %d, got %d", want, got)
	}
	first := entries[0].Step.(floria.Continuing).State.(*testState)
	if want, got := "STOP", first.NextOperation(); want != got {
		t.Errorf("unexpected operation of first entry, wanted %s, got %s", want, got)
	}
}

func TestWriter_PrintsOneLinePerStep(t *testing.T) {
	var buffer bytes.Buffer
	writer := NewWriter(&buffer)

	writer.Step(1, floria.Continuing{State: testState{op: "PUSH1", gas: 100}})
	writer.Step(1, floria.Continuing{State: testState{op: "RETURN", gas: 97, stack: []tosca.Word{{31: 1}}}})
	writer.Step(2, floria.Reverts{Data: tosca.Data{0xDE, 0xAD}, GasLeft: 3})
	writer.Step(1, floria.Returns{Data: tosca.Data{0x00}, GasLeft: 5})
	writer.Step(1, floria.Invalid{Err: errors.New("boom")})
	writer.Step(1, floria.Continuing{State: 12})

	want := strings.Join([]string{
		"1: PUSH1, 100, -empty-",
		"1: RETURN, 97, 0x0000000000000000000000000000000000000000000000000000000000000001",
		"2: reverts data=0xdead gas=3",
		"1: returns data=0x00 gas=5",
		"1: invalid err=boom",
		"1: 12",
		"",
	}, "\n")
	if got := buffer.String(); want != got {
		t.Errorf("unexpected output, wanted\n%v\ngot\n%v", want, got)
	}
	if err := writer.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("injected error")
}

func TestWriter_RetainsWriteErrors(t *testing.T) {
	writer := NewWriter(failingWriter{})
	writer.Step(1, floria.Returns{})
	if writer.Err() == nil {
		t.Errorf("write error was not retained")
	}
}

func TestStatistics_CountsStepsOperationsAndOutcomes(t *testing.T) {
	stats := NewStatistics()
	stats.Step(1, floria.Continuing{State: testState{op: "PUSH1"}})
	stats.Step(1, floria.Continuing{State: testState{op: "PUSH1"}})
	stats.Step(2, floria.Continuing{State: testState{op: "STOP"}})
	stats.Step(2, floria.Returns{})
	stats.Step(1, floria.Continuing{State: testState{op: "RETURN"}})
	stats.Step(1, floria.Reverts{})

	if want, got := uint64(4), stats.Steps(); want != got {
		t.Errorf("unexpected number of steps, wanted %d, got %d", want, got)
	}
	if want, got := uint64(2), stats.Count("PUSH1"); want != got {
		t.Errorf("unexpected PUSH1 count, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1), stats.Outcomes("returns"); want != got {
		t.Errorf("unexpected returns count, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1), stats.Outcomes("reverts"); want != got {
		t.Errorf("unexpected reverts count, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1), stats.pairs[[2]string{"PUSH1", "RETURN"}]; want != got {
		t.Errorf("unexpected pair count, wanted %d, got %d", want, got)
	}
	if want, got := uint64(0), stats.pairs[[2]string{"PUSH1", "STOP"}]; want != got {
		t.Errorf("pairs should not span frames, wanted %d, got %d", want, got)
	}

	summary := stats.Summary()
	for _, part := range []string{"Steps: 4", "Max depth: 2", "PUSH1"} {
		if !strings.Contains(summary, part) {
			t.Errorf("summary does not contain %q:\n%v", part, summary)
		}
	}

	stats.Reset()
	if want, got := uint64(0), stats.Steps(); want != got {
		t.Errorf("unexpected number of steps after reset, wanted %d, got %d", want, got)
	}
}
