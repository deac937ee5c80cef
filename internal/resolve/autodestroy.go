// Package resolve holds the resolution-layer tables the mid-end passes
// consume. Only the auto-destroy table is needed by the ownership pass.
package resolve

import (
	"github.com/krunalpuri/chapel/internal/ir"
	"github.com/krunalpuri/chapel/internal/types"
)

// AutoDestroyMap maps each record type to the function that releases the
// heap state of a value of that type. Resolution registers an entry for
// every non-extern record type, so lookups for tracked symbols always hit.
//
// Keys are compared by identity: resolution creates one canonical SemType
// instance per declared type and both registration and lookup use it.
type AutoDestroyMap struct {
	entries map[types.SemType]*ir.Symbol
}

// NewAutoDestroyMap creates an empty table.
func NewAutoDestroyMap() *AutoDestroyMap {
	return &AutoDestroyMap{entries: make(map[types.SemType]*ir.Symbol)}
}

// Register records fn as the auto-destroy function for typ. The function is
// flagged as a destructor so the ownership scan recognizes calls to it.
func (m *AutoDestroyMap) Register(typ types.SemType, fn *ir.Symbol) {
	fn.SetFlag(ir.FlagDestructor)
	m.entries[typ] = fn
}

// Get returns the auto-destroy function for typ.
func (m *AutoDestroyMap) Get(typ types.SemType) (*ir.Symbol, bool) {
	fn, ok := m.entries[typ]
	return fn, ok
}
