//go:build windows

package main

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	WDA_NONE               = 0x00000000
	WDA_MONITOR            = 0x00000001
	WDA_EXCLUDEFROMCAPTURE = 0x00000011
)

var (
	moduser32                    = windows.NewLazySystemDLL("user32.dll")
	procSetWindowDisplayAffinity = moduser32.NewProc("SetWindowDisplayAffinity")
	procGetWindowDisplayAffinity = moduser32.NewProc("GetWindowDisplayAffinity")
)

var windowHandle windows.HWND

func SetWindowDisplayAffinity(hWnd windows.HWND, dwAffinity uint32) error {
	ret, _, err := procSetWindowDisplayAffinity.Call(
		uintptr(hWnd),
		uintptr(dwAffinity),
	)
	if ret == 0 {
		return err
	}
	return nil
}

func GetWindowDisplayAffinity(hWnd windows.HWND) (dwAffinity uint32, _ error) {
	ret, _, err := procGetWindowDisplayAffinity.Call(
		uintptr(hWnd),
		uintptr(unsafe.Pointer(&dwAffinity)),
	)
	if ret == 0 {
		return 0, err
	}
	return dwAffinity, nil
}

// toggleCaptureExclusion hides the overlay from screen recordings and
// brings it back on the next call. monitor blacks it out instead.
func toggleCaptureExclusion(monitor bool) error {
	// the shortcut is pressed while the overlay has focus
	if windowHandle == 0 {
		windowHandle = windows.GetForegroundWindow()
	}

	curr, err := GetWindowDisplayAffinity(windowHandle)
	if err != nil {
		return err
	}

	to := uint32(WDA_NONE)
	if curr == WDA_NONE {
		to = WDA_EXCLUDEFROMCAPTURE
		if monitor {
			to = WDA_MONITOR
		}
	}
	err = SetWindowDisplayAffinity(windowHandle, to)
	if err != nil {
		return err
	}
	logger.Info().Uint32("affinity", to).Msg("window display affinity changed")
	return nil
}

func raisePriority() {
	err := windows.SetPriorityClass(windows.CurrentProcess(), windows.ABOVE_NORMAL_PRIORITY_CLASS)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to set process priority")
	}
}
