//go:build windows

package main

import (
	"errors"
	"fmt"

	"github.com/hexaghost/wallora/config"
	"github.com/hexaghost/wallora/util/log"
	"golang.org/x/sys/windows"
)

var mutex windows.Handle

// acquireLock creates a named mutex; ERROR_ALREADY_EXISTS means another instance holds it.
func acquireLock() (bool, error) {
	name, err := windows.UTF16PtrFromString(config.AppName + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	mutex, err = windows.CreateMutex(nil, false, name)
	if err != nil {
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			if mutex != 0 {
				windows.CloseHandle(mutex)
				mutex = 0
			}
			return false, nil
		}
		return false, fmt.Errorf("failed to create mutex: %w", err)
	}
	return true, nil
}

func releaseLock() {
	if mutex == 0 {
		return
	}
	if err := windows.CloseHandle(mutex); err != nil {
		log.Printf("Failed to close mutex handle: %v", err)
	}
}
