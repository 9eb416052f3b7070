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
	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/Fantom-foundation/Floria/go/tosca"
)

// generateAnalysisCode produces a contract of maximum size echoing its
// argument. Most of the code is the repeated filler which is jumped over,
// making the run time dominated by the jump destination analysis.
func generateAnalysisCode(filler []byte) tosca.Code {
	initCode := tosca.Code{
		// Parse the input parameter.
		byte(stepvm.PUSH1), 4,
		byte(stepvm.CALLDATALOAD),

		// Store result (input) in memory[0].
		byte(stepvm.PUSH1), 0,
		byte(stepvm.MSTORE),

		// Jump over filler code (destination is a placeholder).
		byte(stepvm.PUSH2), 0xFF, 0xFF,
		byte(stepvm.JUMP),
	}

	endingCode := tosca.Code{
		// Jumpdest for jumping over filler code.
		byte(stepvm.JUMPDEST),

		// Return the result from memory[0].
		byte(stepvm.PUSH1), 32,
		byte(stepvm.PUSH1), 0,
		byte(stepvm.RETURN),
	}

	fillerLength := floria.MaxCodeSize - len(initCode) - len(endingCode)
	code := make(tosca.Code, 0, floria.MaxCodeSize)
	code = append(code, initCode...)
	for i := 0; i < fillerLength/len(filler); i++ {
		code = append(code, filler...)
	}

	// Fill placeholder destination for jumping over filler code.
	jumpDest := len(code)
	code[7] = byte(jumpDest >> 8)
	code[8] = byte(jumpDest)

	return append(code, endingCode...)
}

func analysisExample(name string, filler ...byte) Example {
	return Example{
		Name:      name,
		Code:      generateAnalysisCode(filler),
		reference: analysis,
	}
}

func GetJumpdestAnalysisExample() Example {
	return analysisExample("jumpdest", byte(stepvm.JUMPDEST))
}

func GetStopAnalysisExample() Example {
	return analysisExample("stop", byte(stepvm.STOP))
}

func GetPush1AnalysisExample() Example {
	return analysisExample("push1", byte(stepvm.PUSH1), 0)
}

func GetPush32AnalysisExample() Example {
	return analysisExample("push32", append([]byte{byte(stepvm.PUSH32)}, make([]byte, 32)...)...)
}

func analysis(x int) int {
	return x
}
