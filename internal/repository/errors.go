// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// cannot proceed due to a uniqueness violation (e.g. creating a
// course whose slug is already taken).
package repository

import (
    "errors"
    "strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as creating a
// course with a slug that already exists. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// IsDuplicateEntry reports whether the given database error is a MySQL
// duplicate-entry violation (error 1062). The driver only exposes the
// numeric code inside the message string, so detection is by substring.
func IsDuplicateEntry(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
