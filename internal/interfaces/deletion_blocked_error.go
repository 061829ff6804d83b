package interfaces

import (
	"fmt"
	"sort"
	"strings"
)

// DeletionBlockedError is returned when dependent rows still reference a record.
type DeletionBlockedError struct {
	Resource   string
	References map[string]int64
}

func (e *DeletionBlockedError) Error() string {
	if len(e.References) == 0 {
		return "deletion blocked"
	}
	names := make([]string, 0, len(e.References))
	for name := range e.References {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", e.References[name], name))
	}
	return fmt.Sprintf("cannot delete %s: it still has %s", e.Resource, strings.Join(parts, ", "))
}
