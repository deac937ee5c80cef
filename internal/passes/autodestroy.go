// Package passes implements the mid-end IR passes. The only pass so far is
// auto-destroy insertion: a per-function ownership dataflow that inserts
// the minimum number of destructor calls so every local record variable
// releases its heap state exactly once on every exit path.
//
// Ownership is a binary state per symbol: construction turns it on,
// destruction (or returning the symbol) turns it off. A bitwise copy shares
// ownership between the two symbols, which the analysis tracks as an alias
// clique; destroying any member unowns them all. Forward dataflow over
// per-block GEN/KILL sets establishes which symbols are owned at each block
// boundary, and a destructor is inserted wherever a block ends owning a
// symbol its successors must not see owned.
package passes

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/krunalpuri/chapel/internal/bitvec"
	"github.com/krunalpuri/chapel/internal/controlflow"
	"github.com/krunalpuri/chapel/internal/diagnostics"
	"github.com/krunalpuri/chapel/internal/ir"
	"github.com/krunalpuri/chapel/internal/resolve"
)

// Options configures the ownership analysis.
type Options struct {
	// WarnOwnership enables a warning when a bitwise copy reads a symbol
	// that has not been constructed.
	WarnOwnership bool

	// Parallelism bounds the number of functions analyzed concurrently.
	// Zero or negative means one worker per available CPU.
	Parallelism int
}

// InsertAutoCopyAutoDestroy inserts destructor calls into every function
// with a body. It assumes the auto-copy pass already ran, so the IR carries
// its full complement of constructor calls. Function analyses are
// independent and run data-parallel; each mutates only its own function.
func InsertAutoCopyAutoDestroy(prog *ir.Program, destroyMap *resolve.AutoDestroyMap, opts Options, diags *diagnostics.Bag) error {
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, fn := range prog.Functions {
		// Function prototypes have no body, so we skip them.
		if fn.IsPrototype() {
			continue
		}
		fn := fn
		g.Go(func() error {
			return insertAutoDestroy(fn, destroyMap, opts, diags)
		})
	}
	return g.Wait()
}

// analysis holds the per-function state of one ownership analysis. All of
// it is created when the analysis starts and dropped when it ends; only the
// inserted calls outlive the pass.
type analysis struct {
	fn         *ir.Function
	blocks     []*controlflow.BasicBlock
	destroyMap *resolve.AutoDestroyMap
	opts       Options
	diags      *diagnostics.Bag

	symbols     []*ir.Symbol
	symbolIndex map[*ir.Symbol]int
	aliases     *aliasMap

	gen  []*bitvec.BitVec
	kill []*bitvec.BitVec
	in   []*bitvec.BitVec
	out  []*bitvec.BitVec
}

// insertAutoDestroy runs the ownership analysis on one function. Internal
// invariant violations unwind the analysis and come back as an error.
func insertAutoDestroy(fn *ir.Function, destroyMap *resolve.AutoDestroyMap, opts Options, diags *diagnostics.Bag) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*diagnostics.InternalError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	a := &analysis{
		fn:          fn,
		blocks:      controlflow.BuildBasicBlocks(fn),
		destroyMap:  destroyMap,
		opts:        opts,
		diags:       diags,
		symbolIndex: make(map[*ir.Symbol]int),
		aliases:     newAliasMap(),
	}

	a.extractSymbols()
	if len(a.symbols) == 0 {
		return nil
	}

	a.createFlowSets()
	a.computeTransitions()
	controlflow.ForwardFlow(a.blocks, a.gen, a.kill, a.in, a.out)
	a.insertAutoDestroys()
	return nil
}

func createFlowSet(nblocks, size int) []*bitvec.BitVec {
	set := make([]*bitvec.BitVec, nblocks)
	for i := range set {
		set[i] = bitvec.New(size)
	}
	return set
}

func (a *analysis) createFlowSets() {
	nblocks := len(a.blocks)
	size := len(a.symbols)
	a.gen = createFlowSet(nblocks, size)
	a.kill = createFlowSet(nblocks, size)
	a.in = createFlowSet(nblocks, size)
	a.out = createFlowSet(nblocks, size)
}

// exitRequirement returns the ownership the block's successors agree to
// accept on entry: the intersection of IN over all successors. A block with
// no successors leaves the function, so nothing may remain owned past it.
func (a *analysis) exitRequirement(bb *controlflow.BasicBlock) *bitvec.BitVec {
	req := bitvec.New(len(a.symbols))
	if len(bb.Successors) == 0 {
		return req
	}
	req.SetAll()
	for _, succ := range bb.Successors {
		req = req.Intersect(a.in[succ.ID])
	}
	return req
}

// insertAutoDestroys places destructor calls per block. A symbol needs a
// destructor in a block when it is owned at the end of the block's
// straight-line effect but not permitted to be owned on all successor
// entries:
//
//	need = (IN ∪ GEN) \ KILL \ exit requirement
func (a *analysis) insertAutoDestroys() {
	for i, bb := range a.blocks {
		need := a.in[i].Union(a.gen[i]).Difference(a.kill[i]).Difference(a.exitRequirement(bb))
		a.insertInBlock(bb, need)
	}
}

// insertInBlock adds one auto-destroy call per set bit of need, in
// ascending index order. The calls go immediately before the block's last
// statement when it is a jump or return, otherwise after it.
func (a *analysis) insertInBlock(bb *controlflow.BasicBlock, need *bitvec.BitVec) {
	// Skip degenerate basic blocks.
	if len(bb.Exprs) == 0 || need.Empty() {
		return
	}

	last := bb.Exprs[len(bb.Exprs)-1]
	isjump := ir.IsJump(last)
	anchor := last

	need.ForEach(func(idx int) {
		sym := a.symbols[idx]
		destroyFn, ok := a.destroyMap.Get(sym.Type)
		if !ok {
			diagnostics.Internal(a.diags, sym.Name, "no auto-destroy function registered for %s", sym.Type)
		}
		call := ir.NewDestroyCall(destroyFn, sym)

		inserted := false
		if isjump {
			inserted = a.fn.InsertBefore(last, call)
		} else {
			inserted = a.fn.InsertAfter(anchor, call)
			anchor = call
		}
		if !inserted {
			diagnostics.Internal(a.diags, sym.Name, "block statement is not part of its function body")
		}
	})
}
