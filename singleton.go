package main

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when a live server already serves the root.
var ErrAlreadyRunning = errors.New("another server is already serving this root")

func pidFileFor(dir, root string) string {
	sum := sha256.Sum256([]byte(root))
	return filepath.Join(dir, fmt.Sprintf("%s-%x.pid", serverName, sum[:6]))
}

// ensureSingleInstance claims root for this process by writing a PID file
// keyed by the root path. A file left by a dead process is replaced.
func ensureSingleInstance(dir, root string) (func(), error) {
	pidFile := pidFileFor(dir, root)

	if b, err := os.ReadFile(pidFile); err == nil {
		parts := strings.SplitN(strings.TrimSpace(string(b)), ":", 2)
		if old, err := strconv.Atoi(parts[0]); err == nil && old != os.Getpid() && processAlive(old) {
			return nil, fmt.Errorf("%w: pid %d (%s)", ErrAlreadyRunning, old, pidFile)
		}
	}
	if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d:%s", os.Getpid(), root)), 0o644); err != nil {
		return nil, err
	}
	return func() { os.Remove(pidFile) }, nil
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return p.Signal(syscall.Signal(0)) == nil
}
