//go:build unit
// +build unit

package arch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "arch.json")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write compatibility table for test. Error: %v", err)
	}
	return file
}

func newTestResolver(machineType string, tablePath string, rawCpu string) *Resolver {
	return &Resolver{
		machineType:  machineType,
		tablePath:    tablePath,
		rawCpu:       rawCpu,
		supportedSet: map[string]bool{},
	}
}

// The set and the default must always be consistent with the list once Load
// has produced a non-empty state.
func assertInvariants(t *testing.T, r *Resolver) {
	t.Helper()

	if len(r.supportedArch) == 0 {
		return
	}

	assert.True(t, r.supportedSet[r.defaultArch], fmt.Sprintf("Default arch %v not in supported set.", r.defaultArch))
	assert.Equal(t, len(r.supportedArch), len(r.supportedSet), "Supported set and list disagree in size.")
	for _, a := range r.supportedArch {
		assert.True(t, r.supportedSet[a], fmt.Sprintf("Arch %v in list but not in set.", a))
	}
}

func Test_DetectCpu_map(t *testing.T) {

	for rawCpu, tag := range MapCpu {
		assert.Equal(t, tag, DetectCpu(rawCpu), fmt.Sprintf("Wrong tag for %v.", rawCpu))
		assert.Equal(t, tag, DetectCpu(strings.ToUpper(rawCpu)), fmt.Sprintf("Detection not case insensitive for %v.", rawCpu))
	}
}

func Test_DetectCpu_substrings(t *testing.T) {

	assert.Equal(t, ARCH_AARCH64, DetectCpu("aarch64-foo"))
	assert.Equal(t, ARCH_AARCH64, DetectCpu("armv8l"))
	assert.Equal(t, ARCH_ARMV7, DetectCpu("armv7l"))
	assert.Equal(t, ARCH_ARMHF, DetectCpu("armfoo"))
	assert.Equal(t, ARCH_AMD64, DetectCpu("unknownarch"))
}

func Test_Load_machineInTable(t *testing.T) {

	table := writeTable(t, `{"intel-nuc": ["amd64", "i386"]}`)
	r := newTestResolver("intel-nuc", table, "x86_64")
	r.Load()

	assert.Equal(t, []string{ARCH_AMD64, ARCH_I386}, r.Supported(), "Table order not preserved.")
	assert.Equal(t, ARCH_AMD64, r.Default())
	assertInvariants(t, r)
}

func Test_Load_nativeAppended(t *testing.T) {

	// native support missing from the table entry gets appended last
	table := writeTable(t, `{"some-board": ["i386"]}`)
	r := newTestResolver("some-board", table, "x86_64")
	r.Load()

	assert.Equal(t, []string{ARCH_I386, ARCH_AMD64}, r.Supported())
	assert.Equal(t, ARCH_I386, r.Default(), "Default must follow table preference, not native support.")
	assertInvariants(t, r)
}

func Test_Load_machineUndetectable(t *testing.T) {

	table := writeTable(t, `{"intel-nuc": ["amd64", "i386"]}`)
	r := newTestResolver("", table, "armv7l")
	r.Load()

	assert.Equal(t, []string{ARCH_ARMV7}, r.Supported())
	assert.Equal(t, ARCH_ARMV7, r.Default())
	assertInvariants(t, r)
}

func Test_Load_machineNotInTable(t *testing.T) {

	table := writeTable(t, `{"intel-nuc": ["amd64", "i386"]}`)
	r := newTestResolver("mystery-board", table, "x86_64")
	r.Load()

	assert.Equal(t, []string{ARCH_AMD64}, r.Supported())
	assert.Equal(t, ARCH_AMD64, r.Default())
	assertInvariants(t, r)
}

func Test_Load_emptyTableEntry(t *testing.T) {

	// an entry mapping the machine to an empty list behaves like a missing entry
	table := writeTable(t, `{"some-board": []}`)
	r := newTestResolver("some-board", table, "x86_64")
	r.Load()

	assert.Equal(t, []string{ARCH_AMD64}, r.Supported())
	assert.Equal(t, ARCH_AMD64, r.Default())
	assertInvariants(t, r)
}

func Test_Load_aarch64MachineOverride(t *testing.T) {

	// the table entry for an aarch64 machine type is intentionally ignored
	table := writeTable(t, `{"aarch64": ["amd64"]}`)
	r := newTestResolver("aarch64", table, "x86_64")
	r.Load()

	assert.Equal(t, []string{ARCH_AARCH64, ARCH_ARMV7, ARCH_ARMHF}, r.Supported())
	assert.Equal(t, ARCH_AARCH64, r.Default())
	assertInvariants(t, r)
}

func Test_Load_aarch64NativeOverride(t *testing.T) {

	table := writeTable(t, `{"raspberrypi4": ["armv7", "armhf"]}`)
	r := newTestResolver("raspberrypi4", table, "aarch64")
	r.Load()

	assert.Equal(t, []string{ARCH_AARCH64, ARCH_ARMV7, ARCH_ARMHF}, r.Supported())
	assert.Equal(t, ARCH_AARCH64, r.Default())
	assertInvariants(t, r)
}

func Test_Load_tableUnreadable(t *testing.T) {

	r := newTestResolver("intel-nuc", filepath.Join(t.TempDir(), "nosuchfile.json"), "x86_64")
	r.Load()

	assert.Empty(t, r.Supported(), "Unreadable table must leave the resolver empty.")
	assert.Empty(t, r.Default())
	assert.False(t, r.IsSupported([]string{ARCH_AMD64}))

	if _, err := r.Match([]string{ARCH_AMD64}); err == nil {
		t.Errorf("Match on an empty resolver must fail.")
	}
}

func Test_Load_tableMalformed(t *testing.T) {

	table := writeTable(t, `{"intel-nuc": "not-a-list"`)
	r := newTestResolver("intel-nuc", table, "x86_64")
	r.Load()

	assert.Empty(t, r.Supported(), "Malformed table must leave the resolver empty.")
}

func Test_IsSupported(t *testing.T) {

	table := writeTable(t, `{"intel-nuc": ["amd64", "i386"]}`)
	r := newTestResolver("intel-nuc", table, "x86_64")
	r.Load()

	assert.True(t, r.IsSupported([]string{ARCH_I386}))
	assert.True(t, r.IsSupported([]string{ARCH_ARMHF, ARCH_AMD64}))
	assert.False(t, r.IsSupported([]string{ARCH_ARMHF, ARCH_ARMV7}))
	assert.False(t, r.IsSupported([]string{}))
}

func Test_Match_preferenceOrder(t *testing.T) {

	table := writeTable(t, `{"intel-nuc": ["amd64", "i386"]}`)
	r := newTestResolver("intel-nuc", table, "x86_64")
	r.Load()

	// the resolver's own order wins, not the input's
	match, err := r.Match([]string{ARCH_I386, ARCH_AMD64})
	assert.Nil(t, err)
	assert.Equal(t, ARCH_AMD64, match)

	match, err = r.Match([]string{ARCH_I386})
	assert.Nil(t, err)
	assert.Equal(t, ARCH_I386, match)
}

func Test_Match_notFound(t *testing.T) {

	table := writeTable(t, `{"intel-nuc": ["amd64", "i386"]}`)
	r := newTestResolver("intel-nuc", table, "x86_64")
	r.Load()

	_, err := r.Match([]string{ARCH_ARMV7, ARCH_ARMHF})
	if err == nil {
		t.Fatalf("Expected an error for a disjoint arch list.")
	}

	if _, ok := err.(*ArchNotFoundError); !ok {
		t.Errorf("Expected ArchNotFoundError, got %T: %v", err, err)
	}
}
