package arch

import (
	"encoding/json"
	"fmt"
	"github.com/golang/glog"
	"github.com/open-horizon/archd/cutil"
	"os"
	"path/filepath"
	"strings"
)

// The closed vocabulary of architecture tags that artifacts can be published for.
const (
	ARCH_ARMV7   = "armv7"
	ARCH_ARMHF   = "armhf"
	ARCH_AARCH64 = "aarch64"
	ARCH_I386    = "i386"
	ARCH_AMD64   = "amd64"
)

// MapCpu maps the machine string reported by the OS to the canonical architecture
// tag that CPU family executes natively. Built once, never modified.
var MapCpu = map[string]string{
	"armv7":   ARCH_ARMV7,
	"armv6":   ARCH_ARMHF,
	"armv8":   ARCH_AARCH64,
	"aarch64": ARCH_AARCH64,
	"i686":    ARCH_I386,
	"x86_64":  ARCH_AMD64,
}

// CompatTable maps a machine type (a board or product identifier, e.g. "raspberrypi4")
// to the ordered list of architecture tags that machine can run, most preferred first.
type CompatTable map[string][]string

// ReadCompatTable parses the compatibility table from the given JSON file.
func ReadCompatTable(file string) (CompatTable, error) {

	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("Compatibility table file not found: %s. Error: %v", file, err)
	}

	path, err := os.Open(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("Unable to read compatibility table file: %s. Error: %v", file, err)
	} else {
		defer path.Close()

		table := CompatTable{}
		if err := json.NewDecoder(path).Decode(&table); err != nil {
			return nil, fmt.Errorf("Unable to decode content of compatibility table file: %v", err)
		}

		return table, nil
	}
}

// DetectCpu returns the architecture tag natively executable by a CPU with the
// given raw machine string. Unknown strings degrade to a default tag, they
// never produce an error.
func DetectCpu(rawCpu string) string {
	cpuArch := strings.ToLower(rawCpu)

	if tag, ok := MapCpu[cpuArch]; ok {
		return tag
	}

	if strings.Contains(cpuArch, "aarch64") {
		return ARCH_AARCH64
	}
	if strings.Contains(cpuArch, "arm") && strings.Contains(cpuArch, "v8") {
		return ARCH_AARCH64
	}
	if strings.Contains(cpuArch, "arm") && strings.Contains(cpuArch, "v7") {
		return ARCH_ARMV7
	}
	if strings.Contains(cpuArch, "arm") {
		return ARCH_ARMHF
	}

	glog.Warningf("Unsupported CPU architecture %v, assuming %v.", cpuArch, ARCH_AMD64)
	return ARCH_AMD64
}

// Resolver computes and answers which architecture tags the local machine supports.
// Load populates it once at startup; the query functions never mutate it, so they
// are safe to call concurrently after Load returns.
type Resolver struct {
	machineType   string
	tablePath     string
	rawCpu        string
	defaultArch   string
	supportedArch []string
	supportedSet  map[string]bool
}

func NewResolver(machineType string, tablePath string) *Resolver {
	return NewResolverWithCpu(machineType, tablePath, MachineString())
}

// NewResolverWithCpu builds a resolver for an explicit raw CPU string instead
// of the one reported by the OS.
func NewResolverWithCpu(machineType string, tablePath string, rawCpu string) *Resolver {
	return &Resolver{
		machineType:  machineType,
		tablePath:    tablePath,
		rawCpu:       rawCpu,
		supportedSet: map[string]bool{},
	}
}

// Default returns the preferred architecture tag for this machine. Empty until
// Load has completed successfully.
func (r *Resolver) Default() string {
	return r.defaultArch
}

// Supported returns the supported architecture tags, most preferred first.
func (r *Resolver) Supported() []string {
	return r.supportedArch
}

// NativeSupport returns the tag natively executable by the local CPU.
func (r *Resolver) NativeSupport() string {
	return DetectCpu(r.rawCpu)
}

// MachineType returns the machine type identifier the resolver was configured with.
func (r *Resolver) MachineType() string {
	return r.machineType
}

// Load reads the compatibility table and computes the supported architecture list
// for the local machine. A table read failure is logged and leaves the resolver
// empty, it is never returned to the caller. Load is not safe to call concurrently
// with itself or with the query functions; call it once before serving queries.
func (r *Resolver) Load() {

	table, err := ReadCompatTable(r.tablePath)
	if err != nil {
		glog.Warningf("Unable to read the architecture compatibility table from %v. Error: %v", r.tablePath, err)
		return
	}

	nativeSupport := r.NativeSupport()
	glog.V(2).Infof("Native architecture support: %v", nativeSupport)

	if r.machineType == "" {
		glog.Warningf("Unable to detect the machine type.")
		r.defaultArch = nativeSupport
		r.supportedArch = append(r.supportedArch, r.defaultArch)
		r.supportedSet = archSet(r.supportedArch)
		return
	}

	// 64 bit ARM machines can run 32 bit ARM artifacts, so they get a fixed
	// support list no matter what the table says for them.
	if nativeSupport == ARCH_AARCH64 || r.machineType == ARCH_AARCH64 {
		glog.V(2).Infof("Setting up aarch64 architecture support.")
		r.defaultArch = ARCH_AARCH64
		r.supportedArch = []string{ARCH_AARCH64, ARCH_ARMV7, ARCH_ARMHF}
		r.supportedSet = archSet(r.supportedArch)
		return
	}

	if archList, ok := table[r.machineType]; ok && len(archList) > 0 {
		r.supportedArch = append(r.supportedArch, archList...)
		r.defaultArch = r.supportedArch[0]
	} else {
		glog.Warningf("Machine type %v not found in the compatibility table.", r.machineType)
		r.defaultArch = nativeSupport
		r.supportedArch = append(r.supportedArch, r.defaultArch)
	}

	// Native support is a fallback, appended after the table's preferences.
	if !cutil.SliceContains(r.supportedArch, nativeSupport) {
		r.supportedArch = append(r.supportedArch, nativeSupport)
	}

	r.supportedSet = archSet(r.supportedArch)
}

// IsSupported returns true if at least one tag in the given list is supported
// by this machine. Always false before Load has populated the resolver.
func (r *Resolver) IsSupported(archList []string) bool {
	for _, arch := range archList {
		if r.supportedSet[arch] {
			return true
		}
	}
	return false
}

// Match returns the best supported tag that also appears in the given list. The
// resolver's own preference order wins over the order of the input. An
// ArchNotFoundError is returned when the lists have nothing in common.
func (r *Resolver) Match(archList []string) (string, error) {
	for _, selfArch := range r.supportedArch {
		if cutil.SliceContains(archList, selfArch) {
			return selfArch, nil
		}
	}
	return "", NewArchNotFoundError(archList)
}

func archSet(archList []string) map[string]bool {
	set := make(map[string]bool)
	for _, arch := range archList {
		set[arch] = true
	}
	return set
}
