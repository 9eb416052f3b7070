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
	"os"
	"runtime/pprof"
	"strings"

	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

type gasFlagType struct {
	cli.Int64Flag
}

var GasFlag = &gasFlagType{
	cli.Int64Flag{
		Name:  "gas",
		Usage: "gas provided to the execution",
		Value: 10_000_000,
	},
}

func (f *gasFlagType) Fetch(context *cli.Context) (tosca.Gas, error) {
	gas := context.Int64(f.Name)
	if gas < 0 {
		return 0, fmt.Errorf("invalid gas: %d", gas)
	}
	return tosca.Gas(gas), nil
}

type valueFlagType struct {
	cli.StringFlag
}

var ValueFlag = &valueFlagType{
	cli.StringFlag{
		Name:  "value",
		Usage: "value transferred to the executed code, decimal or 0x-prefixed hex",
		Value: "0",
	},
}

func (f *valueFlagType) Fetch(context *cli.Context) (tosca.Value, error) {
	text := context.String(f.Name)
	var value *uint256.Int
	var err error
	if strings.HasPrefix(text, "0x") {
		value, err = uint256.FromHex(text)
	} else {
		value, err = uint256.FromDecimal(text)
	}
	if err != nil {
		return tosca.Value{}, fmt.Errorf("invalid value %q: %w", text, err)
	}
	return tosca.ValueFromUint256(value), nil
}

type inputFlagType struct {
	cli.StringFlag
}

var InputFlag = &inputFlagType{
	cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "hex encoded call data",
	},
}

func (f *inputFlagType) Fetch(context *cli.Context) (tosca.Data, error) {
	data, err := parseHex(context.String(f.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return data, nil
}

type traceFlagType struct {
	cli.BoolFlag
}

var TraceFlag = &traceFlagType{
	cli.BoolFlag{
		Name:    "trace",
		Aliases: []string{"t"},
		Usage:   "print every executed step",
	},
}

func (f *traceFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type statsFlagType struct {
	cli.BoolFlag
}

var StatsFlag = &statsFlagType{
	cli.BoolFlag{
		Name:  "stats",
		Usage: "print statistics on the executed operations",
	},
}

func (f *statsFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type repeatFlagType struct {
	cli.IntFlag
}

var RepeatFlag = &repeatFlagType{
	cli.IntFlag{
		Name:    "repeat",
		Aliases: []string{"r"},
		Usage:   "number of times the execution is repeated",
		Value:   1,
	},
}

func (f *repeatFlagType) Fetch(context *cli.Context) int {
	return max(context.Int(f.Name), 1)
}

type verbosityFlagType struct {
	cli.IntFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 2,
	},
}

func (f *verbosityFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

var cpuProfileFlag = &cli.StringFlag{
	Name:      "cpuprofile",
	Usage:     "store CPU profile in the provided filename",
	TakesFile: true,
}

var commonFlags = []cli.Flag{
	cpuProfileFlag,
	VerbosityFlag,
}

// addCommonFlags adds the flags for profiling and logging to the given
// command and sets up both before running its action.
func addCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {
		handler := log.NewTerminalHandlerWithLevel(ctx.App.ErrWriter, log.FromLegacyLevel(VerbosityFlag.Fetch(ctx)), false)
		log.SetDefault(log.NewLogger(handler))

		if cpuprofileFilename := ctx.String(cpuProfileFlag.Name); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}

// parseHex decodes hex strings with or without 0x prefix. Odd-length
// strings are rejected.
func parseHex(text string) ([]byte, error) {
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}
	return hexutil.Decode(text)
}

func parseAddress(text string) (tosca.Address, error) {
	data, err := parseHex(text)
	if err != nil {
		return tosca.Address{}, fmt.Errorf("invalid address %q: %w", text, err)
	}
	if len(data) > len(tosca.Address{}) {
		return tosca.Address{}, fmt.Errorf("invalid address %q: too long", text)
	}
	var res tosca.Address
	copy(res[len(res)-len(data):], data)
	return res, nil
}
