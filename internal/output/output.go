// Package output writes the generated artifacts (the report and the insert
// script). Files are replaced atomically so a failed run never leaves a
// half-written artifact behind.
package output

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/zeebo/xxh3"
)

// WriteFile replaces path with data: a temporary file in the same directory
// is written, synced and renamed over path. Readers see the old file or the
// new one, never a partial write.
func WriteFile(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}

// Digest returns the xxh3 hash of data as 16 hex digits. It is logged after
// each write so unchanged inputs can be confirmed to give unchanged output.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}
