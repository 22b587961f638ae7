// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifier scheme for every Yamdb primary key.

IDs are UUIDv7 strings: time-ordered, so B-tree indexes on the primary key
stay append-mostly, and listing by ID is close to listing by creation time.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
//
// Path parameters are checked with Valid before they reach SQL, so a malformed
// ID resolves to NOT_FOUND instead of a type error from the driver.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Stable derives a name-based UUID (v5) from key.
//
// The same key always yields the same ID, so fixtures carrying foreign
// integer IDs can be re-imported without duplicating rows.
func Stable(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
