//go:build !windows

package main

import (
	"errors"
)

func toggleCaptureExclusion(bool) error {
	return errors.ErrUnsupported
}

func raisePriority() {}
