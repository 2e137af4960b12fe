package cutil

import (
	"runtime"
	"strings"
)

func ArchString() string {
	return runtime.GOARCH
}

func SliceContains(a []string, s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// TrimMachineInfo cleans up a machine identifier read from the filesystem.
// Device tree model files are NUL terminated and may carry trailing newlines.
func TrimMachineInfo(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}
