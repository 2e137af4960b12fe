package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-horizon/archd/cutil"
)

// This is the configuration for the archd daemon.
type ArchdConfig struct {
	APIListen       string // Address the architecture query API listens on
	CompatTablePath string // Path of the architecture compatibility table JSON file
	MachineType     string // The machine model identifier, e.g. "raspberrypi4". Overrides MachineInfoPath.
	MachineInfoPath string // A file to read the machine type from, e.g. /proc/device-tree/model
}

func (c *ArchdConfig) String() string {
	return fmt.Sprintf("APIListen: %v, CompatTablePath: %v, MachineType: %v, MachineInfoPath: %v",
		c.APIListen, c.CompatTablePath, c.MachineType, c.MachineInfoPath)
}

// ResolveMachineType returns the machine type identifier for this host, or the
// empty string when the machine is undetectable. A directly configured value
// wins over the machine info file.
func (c *ArchdConfig) ResolveMachineType() string {
	if c.MachineType != "" {
		return c.MachineType
	}
	if c.MachineInfoPath == "" {
		return ""
	}

	content, err := os.ReadFile(filepath.Clean(c.MachineInfoPath))
	if err != nil {
		return ""
	}
	return cutil.TrimMachineInfo(string(content))
}

func Read(file string) (*ArchdConfig, error) {

	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("Config file not found: %s. Error: %v", file, err)
	}

	path, err := os.Open(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("Unable to read config file: %s. Error: %v", file, err)
	} else {
		defer path.Close()

		// instantiate empty which will be filled
		config := ArchdConfig{}

		if err := json.NewDecoder(path).Decode(&config); err != nil {
			return nil, fmt.Errorf("Unable to decode content of config file: %v", err)
		}

		if err := enrichFromEnvvars(&config); err != nil {
			return nil, fmt.Errorf("Unable to enrich config from environment: %v", err)
		}

		applyDefaults(&config)

		return &config, nil
	}
}
