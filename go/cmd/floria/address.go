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

	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/tosca"
	"github.com/urfave/cli/v2"
)

var AddressCmd = cli.Command{
	Name:  "address",
	Usage: "Derive the address of a contract created by CREATE or CREATE2",
	Subcommands: []*cli.Command{
		{
			Action:    doCreateAddress,
			Name:      "create",
			Usage:     "Derive the address from the creator and its nonce",
			ArgsUsage: "<sender> <nonce>",
		},
		{
			Action:    doCreate2Address,
			Name:      "create2",
			Usage:     "Derive the address from the creator, a salt, and the init code",
			ArgsUsage: "<sender> <salt> <initcode>",
		},
	},
}

func doCreateAddress(context *cli.Context) error {
	if context.Args().Len() != 2 {
		return fmt.Errorf("expected two arguments, the sender and its nonce")
	}
	sender, err := parseAddress(context.Args().Get(0))
	if err != nil {
		return err
	}
	nonce, err := strconv.ParseUint(context.Args().Get(1), 0, 64)
	if err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}
	_, err = fmt.Fprintln(context.App.Writer, floria.CreateAddress(sender, nonce))
	return err
}

func doCreate2Address(context *cli.Context) error {
	if context.Args().Len() != 3 {
		return fmt.Errorf("expected three arguments, the sender, the salt, and the init code")
	}
	sender, err := parseAddress(context.Args().Get(0))
	if err != nil {
		return err
	}
	data, err := parseHex(context.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid salt: %w", err)
	}
	var salt tosca.Hash
	if len(data) > len(salt) {
		return fmt.Errorf("invalid salt: longer than %d bytes", len(salt))
	}
	copy(salt[len(salt)-len(data):], data)
	initCode, err := parseHex(context.Args().Get(2))
	if err != nil {
		return fmt.Errorf("invalid init code: %w", err)
	}
	_, err = fmt.Fprintln(context.App.Writer, floria.Create2Address(sender, salt, initCode))
	return err
}
