package kbfs

import (
	"io/fs"
	"syscall"
	"time"
)

// fileTimes returns the status change and access times of fi.
func fileTimes(fi fs.FileInfo) (changed, accessed time.Time) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fi.ModTime(), fi.ModTime()
	}
	return time.Unix(st.Ctim.Unix()), time.Unix(st.Atim.Unix())
}
