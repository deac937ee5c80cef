package controlflow

import (
	"fmt"

	"github.com/krunalpuri/chapel/internal/bitvec"
)

// ForwardFlow solves the forward ownership dataflow equations to fixpoint:
//
//	IN[entry] = ∅
//	IN[b]     = ⋂ OUT[p]  over predecessors p of b
//	OUT[b]    = (IN[b] \ KILL[b]) ∪ GEN[b]
//
// A block with no predecessors keeps an empty IN. All four set families are
// indexed by block ID; in and out are overwritten in place. OUT starts at
// the full set for every block, so iteration converges downward to the
// greatest fixpoint consistent with the empty entry state. That choice lets
// ownership established before a loop flow through the loop instead of
// being cut off at the back edge.
func ForwardFlow(blocks []*BasicBlock, gen, kill, in, out []*bitvec.BitVec) {
	if len(blocks) == 0 {
		return
	}
	if len(gen) != len(blocks) || len(kill) != len(blocks) || len(in) != len(blocks) || len(out) != len(blocks) {
		panic(fmt.Sprintf("controlflow: flow set count mismatch: %d blocks", len(blocks)))
	}

	size := gen[0].Len()
	for i := range blocks {
		in[i].ClearAll()
		out[i].SetAll()
	}

	for iterate := true; iterate; {
		iterate = false
		for i, bb := range blocks {
			newIn := bitvec.New(size)
			if i != 0 && len(bb.Predecessors) > 0 {
				newIn.SetAll()
				for _, pred := range bb.Predecessors {
					newIn = newIn.Intersect(out[pred.ID])
				}
			}
			if !newIn.Equals(in[i]) {
				in[i].CopyFrom(newIn)
				iterate = true
			}

			newOut := in[i].Difference(kill[i]).Union(gen[i])
			if !newOut.Equals(out[i]) {
				out[i].CopyFrom(newOut)
				iterate = true
			}
		}
	}
}
