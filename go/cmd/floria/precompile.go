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

	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var PrecompileCmd = addCommonFlags(cli.Command{
	Action:    doPrecompile,
	Name:      "precompile",
	Usage:     "Run a precompiled contract on hex encoded input",
	ArgsUsage: "<address> <input>",
})

func doPrecompile(context *cli.Context) error {
	if context.Args().Len() != 2 {
		return fmt.Errorf("expected two arguments, the contract address and the hex encoded input")
	}
	address, err := parseAddress(context.Args().Get(0))
	if err != nil {
		return err
	}
	input, err := parseHex(context.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	output, found := precompiled.Run(address, input)
	if !found {
		return fmt.Errorf("no precompiled contract at %v", address)
	}
	_, err = fmt.Fprintln(context.App.Writer, hexutil.Encode(output))
	return err
}
