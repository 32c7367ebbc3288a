// Package id generates the identifiers stamped on history entries.
package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string. ULIDs sort lexicographically by creation
// time, so history rows ordered by id come back in chronological
// order without a separate sort key. The default entropy source is
// crypto/rand-backed and monotonic within a millisecond.
func New() string {
	return ulid.Make().String()
}
