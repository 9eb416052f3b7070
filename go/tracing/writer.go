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
	"fmt"
	"io"

	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Writer writes one line per observed step to an io.Writer. Continuing
// states of Inspectable machines are printed as
//
//	<depth>: <op>, <gas>, <top-of-stack>
//
// outcomes as
//
//	<depth>: <kind> <details>
//
// Write errors are retained and reported by Err; once an error occurred,
// no further output is produced.
type Writer struct {
	out io.Writer
	err error
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) Step(depth int, step floria.Step) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, "%d: %s\n", depth, describe(step))
}

func describe(step floria.Step) string {
	switch s := step.(type) {
	case floria.Continuing:
		inspectable, ok := s.State.(Inspectable)
		if !ok {
			return fmt.Sprintf("%v", s.State)
		}
		top := "-empty-"
		if word, found := inspectable.StackTop(); found {
			top = hexutil.Encode(word[:])
		}
		return fmt.Sprintf("%v, %d, %v", inspectable.NextOperation(), inspectable.Gas(), top)
	case floria.CallRequest:
		return fmt.Sprintf("%v %v gas=%d", s.Kind, s.CodeAddress, s.Gas)
	case floria.CreateRequest:
		return fmt.Sprintf("%v by %v gas=%d", s.Kind, s.Sender, s.Gas)
	case floria.Returns:
		return fmt.Sprintf("returns data=%s gas=%d", hexutil.Encode(s.Data), s.GasLeft)
	case floria.Reverts:
		return fmt.Sprintf("reverts data=%s gas=%d", hexutil.Encode(s.Data), s.GasLeft)
	case floria.Invalid:
		return fmt.Sprintf("invalid err=%v", s.Err)
	}
	return fmt.Sprintf("%v", step)
}
