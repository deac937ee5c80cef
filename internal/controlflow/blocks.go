package controlflow

import (
	"fmt"

	"github.com/krunalpuri/chapel/internal/ir"
)

// BasicBlock represents a sequence of statements with single entry and exit.
type BasicBlock struct {
	ID           int           // Index in the function's block sequence
	Exprs        []ir.Expr     // Statements in this block, in program order
	Successors   []*BasicBlock // Possible next blocks
	Predecessors []*BasicBlock // Blocks that can reach this one
}

// blockBuilder splits a flat statement list into basic blocks.
type blockBuilder struct {
	blocks  []*BasicBlock
	labeled map[*ir.Symbol]*BasicBlock
	pending []pendingEdge
}

// pendingEdge is a jump whose target label may not have been seen yet.
type pendingEdge struct {
	from   *BasicBlock
	target *ir.Symbol
}

func (b *blockBuilder) newBlock() *BasicBlock {
	block := &BasicBlock{ID: len(b.blocks)}
	b.blocks = append(b.blocks, block)
	return block
}

// addEdge adds a control flow edge between blocks.
func addEdge(from, to *BasicBlock) {
	if from != nil && to != nil {
		from.Successors = append(from.Successors, to)
		to.Predecessors = append(to.Predecessors, from)
	}
}

// BuildBasicBlocks splits fn's body into basic blocks and wires the
// predecessor/successor edges. Blocks are returned in program order; the
// first block is the function entry. Panics on a jump to an undefined
// label, which indicates malformed input IR.
func BuildBasicBlocks(fn *ir.Function) []*BasicBlock {
	b := &blockBuilder{labeled: make(map[*ir.Symbol]*BasicBlock)}

	current := b.newBlock()
	for _, stmt := range fn.Body {
		switch s := stmt.(type) {
		case *ir.LabelExpr:
			if len(current.Exprs) > 0 {
				next := b.newBlock()
				if !ir.IsJump(current.Exprs[len(current.Exprs)-1]) {
					addEdge(current, next)
				}
				current = next
			}
			b.labeled[s.Sym] = current
			current.Exprs = append(current.Exprs, stmt)

		case *ir.GotoExpr:
			current.Exprs = append(current.Exprs, stmt)
			b.pending = append(b.pending, pendingEdge{from: current, target: s.Target})
			next := b.newBlock()
			if s.Cond != nil {
				// Conditional jumps fall through when the condition is false.
				addEdge(current, next)
			}
			current = next

		default:
			current.Exprs = append(current.Exprs, stmt)
			if ir.IsJump(stmt) {
				// A return ends the block with no successors.
				current = b.newBlock()
			}
		}
	}

	for _, edge := range b.pending {
		target, ok := b.labeled[edge.target]
		if !ok {
			panic(fmt.Sprintf("controlflow: jump to undefined label %s in %s", edge.target.Name, fn.Sym.Name))
		}
		addEdge(edge.from, target)
	}

	return b.prune()
}

// prune drops empty unreachable blocks left behind trailing jumps and
// renumbers the rest.
func (b *blockBuilder) prune() []*BasicBlock {
	out := b.blocks[:0]
	for _, block := range b.blocks {
		if block.ID != 0 && len(block.Exprs) == 0 && len(block.Predecessors) == 0 {
			continue
		}
		out = append(out, block)
	}
	for i, block := range out {
		block.ID = i
	}
	return out
}
