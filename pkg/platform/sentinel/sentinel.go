// Package sentinel holds the storage facts stores report without knowing the
// domain. Services translate them into domain errors.
package sentinel

import "errors"

// ErrNotFound means no row exists for the key.
var ErrNotFound = errors.New("not found")
