// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tosca

import "fmt"

// StorageStatus is an enum utilized to indicate the effect of a storage
// slot update on the respective slot in the context of the current
// transaction.
type StorageStatus int

const (
	// The comment indicates the storage values for the corresponding
	// configuration. X, Y, Z are non-zero numbers, distinct from each other,
	// while 0 is zero.
	//
	// <original> -> <current> -> <new>
	StorageAssigned         StorageStatus = iota
	StorageAdded                          // 0 -> 0 -> Z
	StorageDeleted                        // X -> X -> 0
	StorageModified                       // X -> X -> Z
	StorageDeletedAdded                   // X -> 0 -> Z
	StorageModifiedDeleted                // X -> Y -> 0
	StorageDeletedRestored                // X -> 0 -> X
	StorageAddedDeleted                   // 0 -> Y -> 0
	StorageModifiedRestored               // X -> Y -> X
)

func (s StorageStatus) String() string {
	switch s {
	case StorageAssigned:
		return "StorageAssigned"
	case StorageAdded:
		return "StorageAdded"
	case StorageAddedDeleted:
		return "StorageAddedDeleted"
	case StorageDeletedRestored:
		return "StorageDeletedRestored"
	case StorageDeletedAdded:
		return "StorageDeletedAdded"
	case StorageDeleted:
		return "StorageDeleted"
	case StorageModified:
		return "StorageModified"
	case StorageModifiedDeleted:
		return "StorageModifiedDeleted"
	case StorageModifiedRestored:
		return "StorageModifiedRestored"
	}
	return fmt.Sprintf("StorageStatus(%d)", s)
}

// GetStorageStatus classifies a storage update given the original
// (=committed at the beginning of the transaction), current, and new value.
func GetStorageStatus(original, current, new Word) StorageStatus {
	var zero = Word{}

	if current == new {
		return StorageAssigned
	}
	if original == zero && current == zero && new != zero {
		return StorageAdded
	}
	if original != zero && current == original && new == zero {
		return StorageDeleted
	}
	if original != zero && current == original && new != zero && new != original {
		return StorageModified
	}
	if original != zero && current == zero && new != original && new != zero {
		return StorageDeletedAdded
	}
	if original != zero && current != original && current != zero && new == zero {
		return StorageModifiedDeleted
	}
	if original != zero && current == zero && new == original {
		return StorageDeletedRestored
	}
	if original == zero && current != zero && new == zero {
		return StorageAddedDeleted
	}
	if original != zero && current != original && current != zero && new == original {
		return StorageModifiedRestored
	}
	return StorageAssigned
}
