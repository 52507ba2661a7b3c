package chain

// Equal checks two nodes for structural equality.
// Two nodes are equal, if they wrap models of the same
// type and are either both source nodes or composite nodes
// with pairwise equal parents (in the same order).
// Model hyperparameters are not considered.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}
	if len(a.parents) != len(b.parents) {
		return false
	}
	for i := range a.parents {
		if !Equal(a.parents[i], b.parents[i]) {
			return false
		}
	}
	return true
}
