// Package policy holds the ownership predicate shared by category, tag and
// journal records: a record without an owner is global (readable by all,
// mutable by none), a record with an owner is exclusive to that user.
package policy

import "github.com/google/uuid"

// CanView reports whether userID may see a record owned by ownerID.
// Global records (nil owner) are visible to everyone.
func CanView(ownerID *uuid.UUID, userID uuid.UUID) bool {
	return ownerID == nil || *ownerID == userID
}

// CanMutate reports whether userID may update or delete a record owned by
// ownerID. Global records are read-only for every user.
func CanMutate(ownerID *uuid.UUID, userID uuid.UUID) bool {
	return ownerID != nil && *ownerID == userID
}
