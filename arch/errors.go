package arch

import (
	"fmt"
)

// ArchNotFoundError occurs when none of the architectures an artifact is
// published for can run on this machine. Callers should treat it as "cannot
// run on this host".
type ArchNotFoundError struct {
	ArchList []string `json:"arch_list"`
}

func (e ArchNotFoundError) Error() string {
	return fmt.Sprintf("No supported architecture found in %v", e.ArchList)
}

func NewArchNotFoundError(archList []string) *ArchNotFoundError {
	return &ArchNotFoundError{
		ArchList: archList,
	}
}
