//go:build !linux && !darwin

package kbfs

import (
	"io/fs"
	"time"
)

// fileTimes falls back to the modification time where the platform stat
// structure is not inspected.
func fileTimes(fi fs.FileInfo) (changed, accessed time.Time) {
	return fi.ModTime(), fi.ModTime()
}
