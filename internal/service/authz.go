package service

import "github.com/google/uuid"

// CanModify is the ownership predicate applied by every product write path:
// a resource may only be changed by the member who owns it.
func CanModify(requester, owner uuid.UUID) bool {
	return requester != uuid.Nil && requester == owner
}
