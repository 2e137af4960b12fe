package config

import (
	"os"
)

// Envvar overrides for the config file. Useful in containerized installs where
// editing the config file is inconvenient.
const MachineTypeEnvvarName = "ARCHD_MACHINE"
const APIListenEnvvarName = "ARCHD_API_LISTEN"
const CompatTablePathEnvvarName = "ARCHD_COMPAT_TABLE"

// Defaults applied after envvar enrichment.
const APIListenDefault = "127.0.0.1:8510"
const CompatTablePathDefault = "/etc/archd/arch.json"
const MachineInfoPathDefault = "/proc/device-tree/model"

func enrichFromEnvvars(config *ArchdConfig) error {

	if machineType := os.Getenv(MachineTypeEnvvarName); machineType != "" {
		config.MachineType = machineType
	}

	if apiListen := os.Getenv(APIListenEnvvarName); apiListen != "" {
		config.APIListen = apiListen
	}

	if tablePath := os.Getenv(CompatTablePathEnvvarName); tablePath != "" {
		config.CompatTablePath = tablePath
	}

	return nil
}

func applyDefaults(config *ArchdConfig) {

	if config.APIListen == "" {
		config.APIListen = APIListenDefault
	}

	if config.CompatTablePath == "" {
		config.CompatTablePath = CompatTablePathDefault
	}

	if config.MachineType == "" && config.MachineInfoPath == "" {
		config.MachineInfoPath = MachineInfoPathDefault
	}
}
