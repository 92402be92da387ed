// Package util generates the prefixed random identifiers used across
// the API: usr, cat, doc, ver, cmt, rft.
package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a 128-bit hex identifier, prefixed like "doc_4f2a..."
// when prefix is non-empty.
func NewID(prefix string) string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	if prefix == "" {
		return hex.EncodeToString(bytes)
	}
	return prefix + "_" + hex.EncodeToString(bytes)
}
