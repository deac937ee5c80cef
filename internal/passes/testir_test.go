package passes

import (
	"testing"

	"github.com/krunalpuri/chapel/internal/controlflow"
	"github.com/krunalpuri/chapel/internal/diagnostics"
	"github.com/krunalpuri/chapel/internal/ir"
	"github.com/krunalpuri/chapel/internal/resolve"
	"github.com/krunalpuri/chapel/internal/types"
)

// testEnv bundles the record type and functions the pass tests build IR
// against: a constructor, an explicit destructor, and the auto-destroy
// function registered for the type.
type testEnv struct {
	rec     *types.RecordType
	ctor    *ir.Symbol // makeR() -> R
	deinit  *ir.Symbol // deinitR(R), destructor-flagged
	destroy *ir.Symbol // autoDestroyR(R), registered in the map
	m       *resolve.AutoDestroyMap
}

func newTestEnv() *testEnv {
	rec := types.NewRecord("R", []types.Field{
		{Name: "data", Type: types.NewClass("Buffer", nil)},
	})

	deinit := ir.NewFunctionSymbol("deinitR", types.TypeVoid)
	deinit.SetFlag(ir.FlagDestructor)

	destroy := ir.NewFunctionSymbol("autoDestroyR", types.TypeVoid)
	m := resolve.NewAutoDestroyMap()
	m.Register(rec, destroy)

	return &testEnv{
		rec:     rec,
		ctor:    ir.NewFunctionSymbol("makeR", rec),
		deinit:  deinit,
		destroy: destroy,
		m:       m,
	}
}

// newFunction creates a bodyless test function named f.
func newFunction(formals ...*ir.Symbol) *ir.Function {
	return ir.NewFunction(ir.NewFunctionSymbol("f", types.TypeVoid), formals...)
}

// run executes the pass on one function and fails the test on error.
func (e *testEnv) run(t *testing.T, fn *ir.Function, opts Options) *diagnostics.Bag {
	t.Helper()
	opts.Parallelism = 1
	diags := diagnostics.NewBag()
	prog := &ir.Program{Functions: []*ir.Function{fn}}
	if err := InsertAutoCopyAutoDestroy(prog, e.m, opts, diags); err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	return diags
}

// runErr executes the pass on one function and returns its error.
func (e *testEnv) runErr(fn *ir.Function, opts Options) error {
	opts.Parallelism = 1
	prog := &ir.Program{Functions: []*ir.Function{fn}}
	return InsertAutoCopyAutoDestroy(prog, e.m, opts, diagnostics.NewBag())
}

// destroyCalls returns the body positions of auto-destroy calls, in order.
func (e *testEnv) destroyCalls(fn *ir.Function) []int {
	var out []int
	for i, stmt := range fn.Body {
		if call, ok := stmt.(*ir.CallExpr); ok && call.Resolved() == e.destroy {
			out = append(out, i)
		}
	}
	return out
}

// destroyedSymbols returns the symbols targeted by auto-destroy calls, in
// body order.
func (e *testEnv) destroyedSymbols(fn *ir.Function) []*ir.Symbol {
	var out []*ir.Symbol
	for _, i := range e.destroyCalls(fn) {
		call := fn.Body[i].(*ir.CallExpr)
		out = append(out, call.Arg(0).(*ir.SymExpr).Sym)
	}
	return out
}

// newAnalysisFor builds the per-function analysis state and runs extraction
// and the transition scan, leaving dataflow and placement to the caller.
func newAnalysisFor(t *testing.T, e *testEnv, fn *ir.Function, opts Options) *analysis {
	t.Helper()
	a := &analysis{
		fn:          fn,
		blocks:      controlflow.BuildBasicBlocks(fn),
		destroyMap:  e.m,
		opts:        opts,
		diags:       diagnostics.NewBag(),
		symbolIndex: make(map[*ir.Symbol]int),
		aliases:     newAliasMap(),
	}
	a.extractSymbols()
	a.createFlowSets()
	a.computeTransitions()
	return a
}
