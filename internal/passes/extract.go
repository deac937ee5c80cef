package passes

import (
	"github.com/krunalpuri/chapel/internal/diagnostics"
	"github.com/krunalpuri/chapel/internal/ir"
	"github.com/krunalpuri/chapel/internal/types"
)

// isTracked is the selection predicate for symbols the ownership analysis
// follows: locals and formals of record type, excluding extern records.
// Class variables are references into separately managed storage and
// primitives carry no heap state, so neither needs a destructor here.
func isTracked(sym *ir.Symbol) bool {
	if !sym.IsLocalOrParameter() {
		return false
	}
	if !types.IsRecord(sym.Type) {
		return false
	}
	return !types.IsExtern(sym.Type)
}

// extractSymbols walks the function's definitions and collects the tracked
// symbols. Bit position i in every flow set refers to symbols[i]; the index
// map inverts that assignment. Each admitted symbol starts as a singleton
// alias clique.
func (a *analysis) extractSymbols() {
	admit := func(sym *ir.Symbol) {
		if !isTracked(sym) {
			return
		}
		if _, ok := a.symbolIndex[sym]; ok {
			return
		}
		a.symbolIndex[sym] = len(a.symbols)
		a.symbols = append(a.symbols, sym)

		// The index map must invert the symbol sequence.
		if a.symbols[a.symbolIndex[sym]] != sym {
			diagnostics.Internal(a.diags, sym.Name, "symbol index does not match symbol sequence")
		}

		a.aliases.add(sym)
	}

	for _, formal := range a.fn.Formals {
		admit(formal)
	}
	for _, def := range ir.CollectDefExprs(a.fn) {
		admit(def.Sym)
	}
}

// index returns the bit position of a tracked symbol. Looking up a symbol
// outside the index is a bug in the caller.
func (a *analysis) index(sym *ir.Symbol) int {
	idx, ok := a.symbolIndex[sym]
	if !ok {
		diagnostics.Internal(a.diags, sym.Name, "symbol is not tracked by the ownership analysis")
	}
	return idx
}
