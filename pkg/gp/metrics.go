package gp

// SubtreeDepth returns the number of edges on the longest
// path from the node down to a source node of its subtree.
// It is 0 for source nodes.
func (n *TreeNode) SubtreeDepth() int {
	depth := 0
	for _, c := range n.children {
		if d := c.SubtreeDepth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// RootDistance returns the number of edges from the root
// of the tree down to the node. It is 0 for the root.
func (n *TreeNode) RootDistance() int {
	dist := 0
	for p := n.parent; p != nil; p = p.parent {
		dist++
	}
	return dist
}

// NodesAtDistance returns the nodes of the subtree with the given
// root distance in pre-order. The result is empty if there is
// no such node.
func (n *TreeNode) NodesAtDistance(h int) []*TreeNode {
	base := n.RootDistance()
	if h < base {
		return nil
	}
	var result []*TreeNode
	n.walk(base, func(e *TreeNode, level int) {
		if level == h {
			result = append(result, e)
		}
	})
	return result
}
