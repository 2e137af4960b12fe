//go:build !linux
// +build !linux

package arch

// MachineString returns the raw machine string for the local CPU. There is no
// uname on this platform, so it is derived from the build architecture.
func MachineString() string {
	return buildMachineString()
}
