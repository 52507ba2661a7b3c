package gp

import (
	"fmt"
	"slices"

	"github.com/mandelsoft/goutils/errors"
)

// SwapNodes exchanges the positions of two nodes of the same
// or different trees. Their subtrees move along. Both trees are
// modified in place, so neither tree may be used concurrently.
//
// Roots cannot be swapped, and a node cannot be swapped with one
// of its ancestors. In these cases nothing is changed.
// Swapping a node with itself is a no-op.
// A second swap of the same nodes restores the original trees.
func SwapNodes(x, y *TreeNode) error {
	if x == nil || y == nil {
		return errors.New("two tree nodes required for swap")
	}
	if x == y {
		return nil
	}
	if x.parent == nil {
		return fmt.Errorf("%w: %s", ErrRootSwap, x.Type())
	}
	if y.parent == nil {
		return fmt.Errorf("%w: %s", ErrRootSwap, y.Type())
	}
	if x.IsAncestorOf(y) {
		return fmt.Errorf("%w: %s is ancestor of %s", ErrAncestorSwap, x.Type(), y.Type())
	}
	if y.IsAncestorOf(x) {
		return fmt.Errorf("%w: %s is ancestor of %s", ErrAncestorSwap, y.Type(), x.Type())
	}

	px, py := x.parent, y.parent
	ix, iy := slices.Index(px.children, x), slices.Index(py.children, y)
	if ix < 0 || iy < 0 {
		return errors.New("corrupted tree: node not found in children of its parent")
	}

	log.Debug("swapping {{x}} and {{y}}", "x", x.String(), "y", y.String(), "xdist", x.RootDistance(), "ydist", y.RootDistance())
	px.children[ix] = y
	y.parent = px
	py.children[iy] = x
	x.parent = py
	return nil
}
