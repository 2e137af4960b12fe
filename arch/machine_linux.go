//go:build linux
// +build linux

package arch

import (
	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// MachineString returns the raw machine string reported by the OS, the same
// value uname -m prints. Falls back to a string derived from the build
// architecture if the uname call fails.
func MachineString() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		glog.Warningf("Unable to get the machine string from uname. Error: %v", err)
		return buildMachineString()
	}
	return unix.ByteSliceToString(uts.Machine[:])
}
