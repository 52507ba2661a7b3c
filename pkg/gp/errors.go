package gp

import (
	"github.com/mandelsoft/goutils/errors"
)

var (
	// ErrRootSwap is reported if a tree root should be swapped.
	// A root has no parent slot to take the other node.
	ErrRootSwap = errors.New("tree root cannot be swapped")
	// ErrAncestorSwap is reported if one of the swapped nodes
	// is an ancestor of the other one.
	ErrAncestorSwap = errors.New("cannot swap node with ancestor")
)
