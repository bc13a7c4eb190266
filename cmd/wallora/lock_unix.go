//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hexaghost/wallora/config"
)

var lockFile *os.File

// acquireLock takes an exclusive lock on a file in the temp dir.
func acquireLock() (bool, error) {
	path := filepath.Join(os.TempDir(), strings.ToLower(config.AppName)+".lock")
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	err = syscall.FcntlFlock(file.Fd(), syscall.F_SETLK, &syscall.Flock_t{
		Type: syscall.F_WRLCK,
	})
	if err != nil {
		file.Close()
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EACCES) {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	lockFile = file
	return true, nil
}

func releaseLock() {
	if lockFile == nil {
		return
	}
	_ = syscall.FcntlFlock(lockFile.Fd(), syscall.F_SETLK, &syscall.Flock_t{
		Type: syscall.F_UNLCK,
	})
	lockFile.Close()
	os.Remove(lockFile.Name())
}
