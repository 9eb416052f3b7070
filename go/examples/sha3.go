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
	"github.com/Fantom-foundation/Floria/go/precompiled"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// GetSha3Example provides a contract computing x iterative hashes of a
// zero word, returning the last byte of the final hash.
func GetSha3Example() Example {
	code := tosca.Code{
		// Parse the input parameter.
		byte(stepvm.PUSH1), 4,
		byte(stepvm.CALLDATALOAD),

		// Implement the loop header.
		byte(stepvm.JUMPDEST),
		byte(stepvm.DUP1),
		byte(stepvm.ISZERO),
		byte(stepvm.PUSH1), 24,
		byte(stepvm.JUMPI),

		// Compute one hash step.
		byte(stepvm.PUSH1), 32,
		byte(stepvm.PUSH1), 0,
		byte(stepvm.SHA3),
		byte(stepvm.PUSH1), 0,
		byte(stepvm.MSTORE),

		// Decrement loop iterator.
		byte(stepvm.PUSH1), 1,
		byte(stepvm.SWAP1),
		byte(stepvm.SUB),

		// Jump back to start of the loop.
		byte(stepvm.PUSH1), 3,
		byte(stepvm.JUMP),

		byte(stepvm.JUMPDEST),

		// Mask out everything but the last byte.
		byte(stepvm.PUSH1), 0,
		byte(stepvm.MLOAD),
		byte(stepvm.PUSH1), 255,
		byte(stepvm.AND),
		byte(stepvm.PUSH1), 0,
		byte(stepvm.MSTORE),

		// Return the result.
		byte(stepvm.PUSH1), 32,
		byte(stepvm.PUSH1), 0,
		byte(stepvm.RETURN),
	}

	return Example{
		Name:      "sha3",
		Code:      code,
		reference: sha3Ref,
	}
}

func sha3Ref(x int) int {
	var hash tosca.Hash
	for i := 0; i < x; i++ {
		hash = precompiled.Keccak256(hash[:])
	}
	return int(hash[31])
}
