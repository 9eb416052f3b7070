// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/Fantom-foundation/Floria/go/interpreter/stepvm"
	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/state"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/Fantom-foundation/Floria/go/tracing"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var RunCmd = addCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Run hex encoded bytecode on an empty world state",
	ArgsUsage: "<code>",
	Flags: []cli.Flag{
		GasFlag,
		ValueFlag,
		InputFlag,
		TraceFlag,
		StatsFlag,
		RepeatFlag,
	},
})

var (
	defaultSender   = tosca.Address{1}
	defaultReceiver = tosca.Address{2}
)

type runConfig struct {
	code  tosca.Code
	input tosca.Data
	value tosca.Value
	gas   tosca.Gas
}

// runResult is the observable result of running code on an empty world.
type runResult struct {
	receipt floria.Receipt
	world   *state.WorldState
	final   *stepvm.State // nil if no frame was executed
}

func doRun(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one argument, the hex encoded code")
	}
	code, err := parseHex(context.Args().First())
	if err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}
	input, err := InputFlag.Fetch(context)
	if err != nil {
		return err
	}
	value, err := ValueFlag.Fetch(context)
	if err != nil {
		return err
	}
	gas, err := GasFlag.Fetch(context)
	if err != nil {
		return err
	}
	config := runConfig{code: code, input: input, value: value, gas: gas}

	evaluator, err := stepvm.NewEvaluator(stepvm.Config{})
	if err != nil {
		return err
	}
	processor := floria.NewProcessor(evaluator, floria.Config{
		AutoCreateSender:     true,
		DefaultSenderBalance: floria.DefaultSenderBalance,
	})

	out := context.App.Writer
	var tracers []floria.Tracer
	if TraceFlag.Fetch(context) {
		tracers = append(tracers, tracing.NewWriter(out))
	}
	var statistics *tracing.Statistics
	if StatsFlag.Fetch(context) {
		statistics = tracing.NewStatistics()
		tracers = append(tracers, statistics)
	}

	repeat := RepeatFlag.Fetch(context)
	var result runResult
	start := time.Now()
	for i := 0; i < repeat; i++ {
		result = run(processor, config, tracers...)
		// only the first run is traced
		if i == 0 && len(tracers) > 0 {
			tracers = nil
		}
	}
	duration := time.Since(start)

	if err := printResult(out, result); err != nil {
		return err
	}
	if statistics != nil {
		fmt.Fprintln(out, statistics.Summary())
	}
	if repeat > 1 {
		rate := float64(repeat) / duration.Seconds()
		fmt.Fprintf(out, "executed %d runs in %v, ~%s runs per second\n",
			repeat, duration, unitconv.FormatPrefix(rate, unitconv.SI, 0))
	}
	return nil
}

// run executes the configured code as the code of the default receiver
// called by the default sender.
func run(processor *floria.Processor, config runConfig, tracers ...floria.Tracer) runResult {
	world := state.NewWorldState(map[tosca.Address]*state.Account{
		defaultReceiver: {Code: config.code},
	})
	recorder := &tracing.Recorder{}
	receiver := defaultReceiver
	receipt := processor.Run(
		tosca.BlockParameters{},
		floria.Transaction{
			Sender:    defaultSender,
			Recipient: &receiver,
			Value:     config.value,
			Input:     config.input,
			Gas:       config.gas,
		},
		world,
		state.NewSubState(),
		tracing.Multi(append(tracers, tracing.NewLogger(nil), recorder)...),
	)

	result := runResult{receipt: receipt, world: world}
	if last, found := recorder.LastState(1); found {
		result.final = last.(*stepvm.State)
	}
	return result
}

func printResult(out io.Writer, result runResult) error {
	outcome := result.receipt.Outcome
	_, reverted := outcome.(floria.Reverts)
	w := &errWriter{out: out}
	w.printf("reverted: %t\n", reverted)
	if invalid, ok := outcome.(floria.Invalid); ok {
		w.printf("failed: %v\n", invalid.Err)
	}
	w.printf("return data: %s\n", hexutil.Encode(floria.OutputOf(outcome)))
	w.printf("gas left: %d\n", floria.GasLeft(outcome))

	w.printf("storage:\n")
	if account, found := result.world.GetAccount(defaultReceiver); found {
		keys := maps.Keys(account.Storage)
		slices.SortFunc(keys, func(a, b tosca.Key) int {
			return bytes.Compare(a[:], b[:])
		})
		for _, key := range keys {
			w.printf("    %v: %v\n", key, account.Storage[key])
		}
	}

	var memory []byte
	var stack []tosca.Word
	if result.final != nil {
		memory = result.final.Memory()
		stack = result.final.Stack()
	}
	w.printf("memory: %s\n", hexutil.Encode(memory))
	w.printf("stack:\n")
	for i := len(stack) - 1; i >= 0; i-- {
		w.printf("    [%4d] %v\n", len(stack)-i-1, stack[i])
	}
	return w.err
}

// errWriter keeps the first error of a sequence of writes.
type errWriter struct {
	out io.Writer
	err error
}

func (w *errWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}
