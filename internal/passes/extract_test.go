package passes

import (
	"testing"

	"github.com/krunalpuri/chapel/internal/ir"
	"github.com/krunalpuri/chapel/internal/types"
)

// Test the tracked-symbol selection predicate across symbol and type kinds
func TestExtractSelectsRecordLocalsAndFormals(t *testing.T) {
	e := newTestEnv()

	recParam := ir.NewParameter("p", e.rec)
	clsParam := ir.NewParameter("c", types.NewClass("C", nil))
	intLocal := ir.NewVariable("i", types.TypeInt)
	extLocal := ir.NewVariable("e", types.NewExternRecord("E", nil))
	recLocal := ir.NewVariable("x", e.rec)

	fn := ir.NewFunction(ir.NewFunctionSymbol("f", types.TypeVoid), recParam, clsParam)
	fn.Append(
		ir.NewDefExpr(intLocal),
		ir.NewDefExpr(extLocal),
		ir.NewDefExpr(recLocal),
		ir.NewReturn(nil),
	)

	a := newAnalysisFor(t, e, fn, Options{})

	if len(a.symbols) != 2 {
		t.Fatalf("extracted %d symbols, want 2", len(a.symbols))
	}
	if a.symbols[0] != recParam || a.symbols[1] != recLocal {
		t.Error("expected the record formal first, then the record local")
	}
}

// Test the index bijection invariant
func TestExtractIndexBijection(t *testing.T) {
	e := newTestEnv()

	x := ir.NewVariable("x", e.rec)
	y := ir.NewVariable("y", e.rec)
	fn := newFunction()
	fn.Append(ir.NewDefExpr(x), ir.NewDefExpr(y), ir.NewReturn(nil))

	a := newAnalysisFor(t, e, fn, Options{})

	if len(a.symbols) != len(a.symbolIndex) {
		t.Fatalf("sequence has %d symbols but index has %d entries", len(a.symbols), len(a.symbolIndex))
	}
	for sym, idx := range a.symbolIndex {
		if a.symbols[idx] != sym {
			t.Errorf("symbols[symbolIndex[%s]] != %s", sym.Name, sym.Name)
		}
	}
}

// Test that extraction seeds singleton alias cliques
func TestExtractSeedsAliases(t *testing.T) {
	e := newTestEnv()

	x := ir.NewVariable("x", e.rec)
	fn := newFunction()
	fn.Append(ir.NewDefExpr(x), ir.NewReturn(nil))

	a := newAnalysisFor(t, e, fn, Options{})

	if !sameMembers(a.aliases.members(x), x) {
		t.Error("each extracted symbol should start as its own clique")
	}
}
