// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

// Snapshot identifies a position in a journal that can be rolled back to.
type Snapshot int

// journal records undo operations for mutations. Begin marks a position,
// Rollback undoes everything recorded after it. Mutations made while no
// snapshot is open are not recorded, and closing the outermost snapshot
// discards the journal.
type journal struct {
	undo []func()
	open int
}

func (j *journal) record(undo func()) {
	if j.open > 0 {
		j.undo = append(j.undo, undo)
	}
}

// Begin opens a new snapshot.
func (j *journal) Begin() Snapshot {
	j.open++
	return Snapshot(len(j.undo))
}

// Commit closes the given snapshot, keeping all changes made since.
func (j *journal) Commit(snapshot Snapshot) {
	j.close()
}

// Rollback closes the given snapshot, undoing all changes made since.
func (j *journal) Rollback(snapshot Snapshot) {
	for len(j.undo) > int(snapshot) {
		j.undo[len(j.undo)-1]()
		j.undo = j.undo[:len(j.undo)-1]
	}
	j.close()
}

func (j *journal) close() {
	if j.open > 0 {
		j.open--
	}
	if j.open == 0 {
		j.undo = j.undo[:0]
	}
}
