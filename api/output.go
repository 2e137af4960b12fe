package api

import (
	"github.com/open-horizon/archd/arch"
	"github.com/open-horizon/archd/cutil"
	"github.com/open-horizon/archd/version"
)

// The output format for GET /architecture
type ArchitectureInfo struct {
	DefaultArch   string   `json:"default_arch"`
	SupportedArch []string `json:"supported_arch"`
}

func NewArchitectureInfo(resolver *arch.Resolver) *ArchitectureInfo {
	supported := resolver.Supported()
	if supported == nil {
		supported = []string{}
	}

	return &ArchitectureInfo{
		DefaultArch:   resolver.Default(),
		SupportedArch: supported,
	}
}

// The input format for POST /architecture/match and POST /architecture/supported
type ArchListInput struct {
	Architectures []string `json:"architectures"`
}

// The output format for POST /architecture/match
type MatchOutput struct {
	Match string `json:"match"`
}

// The output format for POST /architecture/supported
type SupportedOutput struct {
	Supported bool `json:"supported"`
}

// The output format for GET /status
type Info struct {
	Version     string `json:"version"`
	BuildArch   string `json:"build_arch"` // the arch this daemon binary was built for
	MachineType string `json:"machine_type,omitempty"`
	NativeArch  string `json:"native_arch"`
	Resolved    bool   `json:"resolved"` // false until arch resolution has finished
}

func NewInfo(resolver *arch.Resolver, resolved bool) *Info {
	return &Info{
		Version:     version.ARCHD_VERSION,
		BuildArch:   cutil.ArchString(),
		MachineType: resolver.MachineType(),
		NativeArch:  resolver.NativeSupport(),
		Resolved:    resolved,
	}
}

type APIError struct {
	Err string `json:"error"`
}

func NewAPIError(err string) *APIError {
	return &APIError{
		Err: err,
	}
}
