// Package metadata stores small client-local key/value blobs, such as the
// persisted session slot.
package metadata
