package arch

import (
	"github.com/open-horizon/archd/cutil"
)

// What uname -m would report for each build architecture this module supports.
var machineByGoarch = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
	"arm":   "armv7l",
}

func buildMachineString() string {
	if machine, ok := machineByGoarch[cutil.ArchString()]; ok {
		return machine
	}
	return cutil.ArchString()
}
