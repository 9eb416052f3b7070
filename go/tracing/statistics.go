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
	"strings"
	"sync"

	"github.com/Fantom-foundation/Floria/go/processor/floria"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Statistics aggregates the number of steps, the executed operations of
// Inspectable states, and frame outcomes. It may be shared among multiple
// concurrent executions.
type Statistics struct {
	mutex    sync.Mutex
	steps    uint64
	maxDepth int
	singles  map[string]uint64
	pairs    map[[2]string]uint64
	outcomes map[string]uint64
	previous map[int]string
}

func NewStatistics() *Statistics {
	s := &Statistics{}
	s.reset()
	return s
}

func (s *Statistics) Step(depth int, step floria.Step) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if depth > s.maxDepth {
		s.maxDepth = depth
	}
	switch step := step.(type) {
	case floria.Continuing:
		s.steps++
		inspectable, ok := step.State.(Inspectable)
		if !ok {
			return
		}
		op := inspectable.NextOperation()
		s.singles[op]++
		if previous, found := s.previous[depth]; found {
			s.pairs[[2]string{previous, op}]++
		}
		s.previous[depth] = op
	case floria.Returns:
		s.outcomes["returns"]++
		delete(s.previous, depth)
	case floria.Reverts:
		s.outcomes["reverts"]++
		delete(s.previous, depth)
	case floria.Invalid:
		s.outcomes["invalid"]++
		delete(s.previous, depth)
	}
}

// Steps returns the number of observed continuing states.
func (s *Statistics) Steps() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.steps
}

// MaxDepth returns the deepest observed frame depth.
func (s *Statistics) MaxDepth() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.maxDepth
}

// Count returns how often the given operation was observed.
func (s *Statistics) Count(op string) uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.singles[op]
}

// Outcomes returns the number of frames ending with the given kind of
// outcome: "returns", "reverts", or "invalid".
func (s *Statistics) Outcomes(kind string) uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.outcomes[kind]
}

func (s *Statistics) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.reset()
}

func (s *Statistics) reset() {
	s.steps = 0
	s.maxDepth = 0
	s.singles = map[string]uint64{}
	s.pairs = map[[2]string]uint64{}
	s.outcomes = map[string]uint64{}
	s.previous = map[int]string{}
}

// Summary renders the collected statistics listing the most frequent
// operations and operation pairs.
func (s *Statistics) Summary() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	builder := strings.Builder{}
	write := func(format string, args ...any) {
		builder.WriteString(fmt.Sprintf(format, args...))
	}

	write("\n----- Statistics ------\n")
	write("\nSteps: %d\n", s.steps)
	write("Max depth: %d\n", s.maxDepth)

	write("\nOutcomes:\n")
	kinds := maps.Keys(s.outcomes)
	slices.Sort(kinds)
	for _, kind := range kinds {
		write("\t%-10v: %d\n", kind, s.outcomes[kind])
	}

	write("\nSingles:\n")
	for _, op := range topN(s.singles, 5) {
		write("\t%-30v: %d (%.2f%%)\n", op, s.singles[op], percentage(s.singles[op], s.steps))
	}
	write("\nPairs:\n")
	for _, pair := range topN(s.pairs, 5) {
		write("\t%-30v%-30v: %d (%.2f%%)\n", pair[0], pair[1], s.pairs[pair], percentage(s.pairs[pair], s.steps))
	}
	return builder.String()
}

func topN[K comparable](data map[K]uint64, n int) []K {
	keys := maps.Keys(data)
	slices.SortStableFunc(keys, func(a, b K) int {
		switch {
		case data[a] > data[b]:
			return -1
		case data[a] < data[b]:
			return 1
		}
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})
	if len(keys) < n {
		return keys
	}
	return keys[:n]
}

func percentage(count, total uint64) float32 {
	if total == 0 {
		return 0
	}
	return float32(count*100) / float32(total)
}
