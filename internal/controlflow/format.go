package controlflow

import (
	"fmt"
	"strings"

	"github.com/krunalpuri/chapel/internal/ir"
)

// FormatBlocks returns a readable text representation of a block list:
// each block with its edges and statements, in program order.
func FormatBlocks(blocks []*BasicBlock) string {
	var b strings.Builder
	for _, block := range blocks {
		writeBlock(&b, block)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, block *BasicBlock) {
	fmt.Fprintf(b, "block b%d", block.ID)
	if ids := blockIDs(block.Predecessors); ids != "" {
		fmt.Fprintf(b, "  preds: %s", ids)
	}
	if ids := blockIDs(block.Successors); ids != "" {
		fmt.Fprintf(b, "  succs: %s", ids)
	}
	b.WriteString("\n")

	for _, expr := range block.Exprs {
		fmt.Fprintf(b, "  %s\n", ir.FormatExpr(expr))
	}
}

func blockIDs(blocks []*BasicBlock) string {
	if len(blocks) == 0 {
		return ""
	}
	ids := make([]string, len(blocks))
	for i, block := range blocks {
		ids[i] = fmt.Sprintf("b%d", block.ID)
	}
	return strings.Join(ids, " ")
}
