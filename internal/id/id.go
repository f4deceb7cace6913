// Package id generates the short identifiers used for journal rows.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generate returns "<prefix>_<8 hex chars>" backed by crypto/rand, falling
// back to a clock-derived suffix if the random source fails.
func Generate(prefix string) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%s_%08x", prefix, time.Now().UnixNano()&0xffffffff)
	}
	return prefix + "_" + hex.EncodeToString(b[:])
}
