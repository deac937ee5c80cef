package passes

import (
	"github.com/krunalpuri/chapel/internal/bitvec"
	"github.com/krunalpuri/chapel/internal/diagnostics"
	"github.com/krunalpuri/chapel/internal/ir"
	"github.com/krunalpuri/chapel/internal/types"
)

// computeTransitions scans every block for ownership transitions and fills
// the GEN and KILL sets. For each tracked symbol reference, the smallest
// enclosing call operation is run through three recognizers: construction,
// bitwise move, and destruction (a return acts as destruction of its
// argument). The recognizers match disjoint call shapes; that disjointness
// is checked rather than assumed.
func (a *analysis) computeTransitions() {
	for i, bb := range a.blocks {
		for _, expr := range bb.Exprs {
			for _, se := range ir.CollectSymExprs(expr) {
				if _, ok := a.symbolIndex[se.Sym]; !ok {
					continue
				}
				call, ok := se.Parent().(*ir.CallExpr)
				if !ok {
					continue
				}

				fired := 0
				if a.processConstructor(call, se, a.gen[i], a.kill[i]) {
					fired++
				}
				if a.processMove(call, se, a.gen[i], a.kill[i]) {
					fired++
				}
				if a.processDestructor(call, se, a.kill[i]) {
					fired++
				}
				if fired > 1 {
					diagnostics.Internal(a.diags, se.Sym.Name, "ownership recognizers matched %d shapes for one call", fired)
				}
			}
		}
	}
}

// isConstructor reports whether call yields a fully-constructed record
// value: any resolved function not returning a class, or any unresolved
// primitive whose result type is not a class.
func isConstructor(call *ir.CallExpr) bool {
	if fn := call.Resolved(); fn != nil {
		return !types.IsClass(fn.Return)
	}
	return !types.IsClass(call.Type)
}

// markOwned records that the symbol at idx owns its heap state from here to
// the end of the block.
func markOwned(gen, kill *bitvec.BitVec, idx int) {
	gen.Set(idx)
	// A symbol destroyed earlier in the block is revived; its kill bit no
	// longer describes the block's net effect.
	kill.Clear(idx)
}

// ownedInBlock reports whether the symbol at idx is owned at this point of
// the block scan: constructed here and not destroyed since.
func ownedInBlock(gen, kill *bitvec.BitVec, idx int) bool {
	return gen.Get(idx) && !kill.Get(idx)
}

// processConstructor recognizes ('move'/'assign' lhs (call ...)) where the
// call produces a fresh record value, and marks the left-hand symbol owned.
func (a *analysis) processConstructor(call *ir.CallExpr, se *ir.SymExpr, gen, kill *bitvec.BitVec) bool {
	if !call.IsPrimitive(ir.PrimMove) && !call.IsPrimitive(ir.PrimAssign) {
		return false
	}
	if call.Arg(0) != se {
		return false
	}
	rhs, ok := call.Arg(1).(*ir.CallExpr)
	if !ok || !isConstructor(rhs) {
		return false
	}

	idx := a.index(se.Sym)
	// A symbol is constructed once; reconstructing it while it still owns
	// its state means upstream dropped a destructor call.
	if ownedInBlock(gen, kill, idx) {
		diagnostics.Internal(a.diags, se.Sym.Name, "symbol reconstructed without intervening destruction")
	}
	markOwned(gen, kill, idx)
	return true
}

// processMove recognizes ('move'/'assign' lhs rhs) where rhs is a bare
// symbol reference: a bitwise copy. The left symbol inherits the right
// symbol's in-block ownership, and the two become aliases either way.
func (a *analysis) processMove(call *ir.CallExpr, se *ir.SymExpr, gen, kill *bitvec.BitVec) bool {
	if !call.IsPrimitive(ir.PrimMove) && !call.IsPrimitive(ir.PrimAssign) {
		return false
	}
	if call.Arg(0) != se {
		return false
	}
	rhs, ok := call.Arg(1).(*ir.SymExpr)
	if !ok {
		return false
	}

	lidx := a.index(se.Sym)
	ridx := a.index(rhs.Sym)
	if ownedInBlock(gen, kill, lidx) {
		diagnostics.Internal(a.diags, se.Sym.Name, "bitwise copy overwrites an owned symbol")
	}
	if gen.Get(ridx) {
		markOwned(gen, kill, lidx)
	} else if a.opts.WarnOwnership {
		a.diags.Add(diagnostics.NewWarning("uninitialized symbol is copied here").
			WithCode(diagnostics.WarnUninitializedCopy).
			WithPrimaryLabel(rhs.Loc(), rhs.Sym.Name+" has not been constructed on this path"))
	}

	// Merge aliases whether or not the source is live.
	a.aliases.merge(rhs.Sym, se.Sym)
	return true
}

// processDestructor recognizes a call to a destructor-flagged function
// taking se as its first argument, or a return primitive taking se, and
// kills every member of the symbol's alias clique. Bits already killed in
// this block stay killed, so destroying two members of one clique (as the
// pass itself emits) is not an error.
func (a *analysis) processDestructor(call *ir.CallExpr, se *ir.SymExpr, kill *bitvec.BitVec) bool {
	if fn := call.Resolved(); fn != nil {
		if !fn.HasFlag(ir.FlagDestructor) {
			return false
		}
		// The first argument is the thing being destroyed.
		if call.Arg(0) != se {
			diagnostics.Internal(a.diags, se.Sym.Name, "destructor call does not destroy its first argument")
		}
	} else if !call.IsPrimitive(ir.PrimReturn) {
		return false
	}

	for _, alias := range a.aliases.members(se.Sym) {
		kill.Set(a.index(alias))
	}
	return true
}
