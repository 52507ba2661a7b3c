package chain

import (
	"fmt"
)

// Pair is a pair of corresponding nodes of two chains.
type Pair struct {
	A *Node
	B *Node
}

func (p Pair) String() string {
	return fmt.Sprintf("%s<->%s", p.A.Type(), p.B.Type())
}

// EquivalentSubtree determines the corresponding node pairs
// of two (sub) trees, whose positions match node by node.
//
// Matching is strictly positional: the i-th parent of a node
// is only compared with the i-th parent of its counterpart.
// A pair of nodes with different types, with different kinds
// (source vs composite) or with a different number of parents
// is dropped together with everything below it. If this happens
// for the given nodes, the result is empty. Otherwise, the result
// starts with the given pair, followed by the pairs found for
// the parents in parent order.
func EquivalentSubtree(a, b *Node) []Pair {
	if a == nil || b == nil {
		return nil
	}
	if a.Type() != b.Type() {
		return nil
	}
	if a.IsSource() != b.IsSource() {
		return nil
	}
	if a.IsSource() {
		return []Pair{{a, b}}
	}
	if len(a.parents) != len(b.parents) {
		return nil
	}
	result := []Pair{{a, b}}
	for i := range a.parents {
		result = append(result, EquivalentSubtree(a.parents[i], b.parents[i])...)
	}
	return result
}
