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
	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"github.com/ethereum/go-ethereum/log"
)

// Logger reports steps to a structured logger. Continuing states are logged
// at trace level, outcomes at debug level.
type Logger struct {
	logger log.Logger
}

func NewLogger(logger log.Logger) *Logger {
	if logger == nil {
		logger = log.Root()
	}
	return &Logger{logger: logger}
}

func (l *Logger) Step(depth int, step floria.Step) {
	switch s := step.(type) {
	case floria.Continuing:
		if inspectable, ok := s.State.(Inspectable); ok {
			l.logger.Trace("Step", "depth", depth, "op", inspectable.NextOperation(), "gas", inspectable.Gas())
		} else {
			l.logger.Trace("Step", "depth", depth)
		}
	case floria.Returns:
		l.logger.Debug("Frame returned", "depth", depth, "gasLeft", s.GasLeft, "output", len(s.Data))
	case floria.Reverts:
		l.logger.Debug("Frame reverted", "depth", depth, "gasLeft", s.GasLeft, "output", len(s.Data))
	case floria.Invalid:
		l.logger.Debug("Frame failed", "depth", depth, "err", s.Err)
	}
}
