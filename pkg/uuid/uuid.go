// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers for request tracing and view sessions.

Version 7 values sort by creation time, which keeps session keys in Redis and
request ids in logs roughly chronological.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string, falling back to a random v4 if the
// clock-based generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
