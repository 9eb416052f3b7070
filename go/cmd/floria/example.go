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
	"fmt"
	"strconv"
	"time"

	"github.com/Fantom-foundation/Floria/go/examples"
	"github.com/Fantom-foundation/Floria/go/interpreter/stepvm"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
)

var ExampleCmd = addCommonFlags(cli.Command{
	Action:    doExample,
	Name:      "example",
	Usage:     "Run an example contract and compare its result with the reference",
	ArgsUsage: "<name> <argument>",
	Flags: []cli.Flag{
		RepeatFlag,
	},
})

func doExample(context *cli.Context) error {
	out := context.App.Writer
	if context.Args().Len() != 2 {
		names := []string{}
		for _, example := range examples.All() {
			names = append(names, example.Name)
		}
		return fmt.Errorf("expected two arguments, the example name and its argument; available examples: %v", names)
	}
	example, found := examples.Lookup(context.Args().Get(0))
	if !found {
		return fmt.Errorf("unknown example %q", context.Args().Get(0))
	}
	argument, err := strconv.Atoi(context.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	evaluator, err := stepvm.NewEvaluator(stepvm.Config{})
	if err != nil {
		return err
	}

	repeat := RepeatFlag.Fetch(context)
	var result examples.Result
	start := time.Now()
	for i := 0; i < repeat; i++ {
		result, err = example.RunOn(evaluator, argument)
		if err != nil {
			return err
		}
	}
	duration := time.Since(start)

	want := example.RunReference(argument)
	fmt.Fprintf(out, "result: %d\n", result.Result)
	fmt.Fprintf(out, "used gas: %d\n", result.UsedGas)
	if want != result.Result {
		return fmt.Errorf("result does not match reference, wanted %d, got %d", want, result.Result)
	}
	if repeat > 1 {
		rate := float64(repeat) / duration.Seconds()
		fmt.Fprintf(out, "executed %d runs in %v, ~%s runs per second\n",
			repeat, duration, unitconv.FormatPrefix(rate, unitconv.SI, 0))
	}
	return nil
}
