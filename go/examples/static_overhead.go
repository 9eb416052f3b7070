// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"github.com/Fantom-foundation/Floria/go/interpreter/stepvm"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// GetStaticOverheadExample provides the shortest contract touching the
// typical per-call costs of an evaluator:
// - code being not empty causes a jump destination analysis
// - opcode calldatacopy causes memory expansion
// - opcode return causes output not to be empty
func GetStaticOverheadExample() Example {
	code := tosca.Code{
		byte(stepvm.PUSH1), 4, // push size 4
		byte(stepvm.PUSH1), 32, // push offset 32
		byte(stepvm.PUSH1), 28, // push destOffset 28
		byte(stepvm.CALLDATACOPY), // copy 4 bytes at offset 32 from call data into memory at offset 28
		byte(stepvm.PUSH1), 32,    // push len 32
		byte(stepvm.PUSH1), 0, // push offset 0
		byte(stepvm.RETURN), // return 32 bytes at offset 0
	}

	return Example{
		Name:      "static_overhead",
		Code:      code,
		reference: staticOverheadRef,
	}
}

func staticOverheadRef(x int) int {
	return x
}
