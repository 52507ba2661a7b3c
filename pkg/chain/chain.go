package chain

import (
	"fmt"
	"slices"

	"github.com/mandelsoft/goutils/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Chain is a complete pipeline consisting of a set of
// nodes with a single root node, the node no other node
// of the chain uses as parent.
//
// A chain is not thread-safe. A chain being modified
// must be owned by a single goroutine.
type Chain struct {
	name  string
	nodes []*Node
	index sets.Set[*Node]
}

func New(name ...string) *Chain {
	c := &Chain{index: sets.New[*Node]()}
	if len(name) > 0 {
		c.name = name[0]
	}
	return c
}

func (c *Chain) Name() string {
	return c.name
}

func (c *Chain) SetName(name string) {
	c.name = name
}

// Nodes returns the nodes of the chain in insertion order.
func (c *Chain) Nodes() []*Node {
	return slices.Clone(c.nodes)
}

func (c *Chain) Len() int {
	return len(c.nodes)
}

func (c *Chain) Has(n *Node) bool {
	return c.index.Has(n)
}

// AddNode adds a node to the chain. A node may only
// belong to one chain.
func (c *Chain) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidNode)
	}
	if n.chain != nil {
		if n.chain == c {
			return fmt.Errorf("%w: %s node %s", ErrAlreadyInChain, n.Type(), n.Id())
		}
		return fmt.Errorf("%w: %s node %s belongs to another chain", ErrAlreadyInChain, n.Type(), n.Id())
	}
	c.add(n)
	log.Trace("added {{type}} node {{node}} to chain {{chain}}", "type", n.Type(), "node", n.Id(), "chain", c.name)
	return nil
}

func (c *Chain) add(n *Node) {
	n.chain = c
	c.nodes = append(c.nodes, n)
	c.index.Insert(n)
}

// AddSubtree adds the given node and all nodes of its
// subtree not yet part of the chain.
func (c *Chain) AddSubtree(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidNode)
	}
	nodes := n.Subtree()
	for _, e := range nodes {
		if e.chain != nil && e.chain != c {
			return fmt.Errorf("%w: %s node %s belongs to another chain", ErrAlreadyInChain, e.Type(), e.Id())
		}
	}
	for _, e := range nodes {
		if e.chain == nil {
			c.add(e)
		}
	}
	return nil
}

// candidates returns the nodes not used as parent
// by any other node of the chain.
func (c *Chain) candidates() []*Node {
	used := sets.New[*Node]()
	for _, n := range c.nodes {
		used.Insert(n.parents...)
	}
	var result []*Node
	for _, n := range c.nodes {
		if !used.Has(n) {
			result = append(result, n)
		}
	}
	return result
}

// Root returns the unique root node of the chain.
func (c *Chain) Root() (*Node, error) {
	roots := c.candidates()
	switch len(roots) {
	case 1:
		return roots[0], nil
	case 0:
		if len(c.nodes) == 0 {
			return nil, fmt.Errorf("%w: empty chain", ErrInvalidChain)
		}
		return nil, fmt.Errorf("%w: no root node found", ErrInvalidChain)
	default:
		return nil, fmt.Errorf("%w: multiple root candidates (%s)", ErrInvalidChain, describe(roots))
	}
}

// Validate checks the chain invariants: there must be exactly
// one root, all nodes must be reachable from the root and
// all parents of chain nodes must belong to the chain.
func (c *Chain) Validate() error {
	root, err := c.Root()
	if err != nil {
		return err
	}
	for _, n := range c.nodes {
		for i, p := range n.parents {
			if !c.index.Has(p) {
				return fmt.Errorf("%w: parent %d (%s) of %s node %s is not part of the chain", ErrInvalidChain, i, p.Type(), n.Type(), n.Id())
			}
		}
	}
	if cycle := findCycle(root); cycle != nil {
		return fmt.Errorf("%w: dependency cycle %s", ErrInvalidChain, describe(cycle))
	}
	reachable := root.Subtree()
	if len(reachable) != len(c.nodes) {
		return fmt.Errorf("%w: %d of %d nodes not reachable from root", ErrInvalidChain, len(c.nodes)-len(reachable), len(c.nodes))
	}
	return nil
}

// PreOrder returns the nodes reachable from the root in
// pre-order, the node first and then the complete subtrees
// of its parents in parent order.
func (c *Chain) PreOrder() ([]*Node, error) {
	root, err := c.Root()
	if err != nil {
		return nil, err
	}
	return root.Subtree(), nil
}

// ReplaceNode substitutes the node repl for the node old.
// It takes the place of old as root, if old is the root, and in all
// parent lists using old, at the same index. Afterwards, the chain
// consists of the nodes reachable from the root: old (and the part of
// its subtree not used otherwise) is removed, repl and its subtree are added.
// If old is not part of the chain or any node reachable after the
// replacement already belongs to another chain, an error is returned
// and the chain is not modified.
func (c *Chain) ReplaceNode(old, repl *Node) error {
	if old == nil || !c.index.Has(old) {
		id := "<nil>"
		if old != nil {
			id = old.Id()
		}
		return errors.ErrNotFound(KIND_NODE, id)
	}
	if repl == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidNode)
	}
	if repl == old {
		return nil
	}
	if repl.chain == c {
		return fmt.Errorf("%w: %s node %s", ErrAlreadyInChain, repl.Type(), repl.Id())
	}
	root, err := c.Root()
	if err != nil {
		return err
	}
	if root == old {
		root = repl
	}

	for _, e := range c.reachable(root, old, repl) {
		if e.chain != nil && e.chain != c {
			return fmt.Errorf("%w: %s node %s belongs to another chain", ErrAlreadyInChain, e.Type(), e.Id())
		}
	}

	// consumers of old would become part of the subtree of repl
	// after the replacement, if repl depends on them.
	consumers := sets.New[*Node]()
	for _, n := range c.nodes {
		if n != old && dependsOn(n, old) {
			consumers.Insert(n)
		}
	}
	for _, e := range repl.Subtree() {
		if consumers.Has(e) {
			return fmt.Errorf("%w: replacing %s node %s by %s would create a dependency cycle via %s node %s", ErrInvalidChain, old.Type(), old.Id(), repl, e.Type(), e.Id())
		}
	}

	log.Debug("replacing {{old}} node {{oldid}} by {{new}} in chain {{chain}}", "old", old.Type(), "oldid", old.Id(), "new", repl.String(), "chain", c.name)
	for _, n := range c.nodes {
		if n == old {
			continue
		}
		for i, p := range n.parents {
			if p == old {
				n.parents[i] = repl
			}
		}
	}

	reachable := root.Subtree()
	keep := sets.New(reachable...)
	var nodes []*Node
	for _, n := range c.nodes {
		if keep.Has(n) {
			nodes = append(nodes, n)
		} else {
			n.chain = nil
			c.index.Delete(n)
		}
	}
	c.nodes = nodes
	for _, n := range reachable {
		if !c.index.Has(n) {
			c.add(n)
		}
	}
	return nil
}

// reachable returns the nodes reachable from root, if repl
// were used instead of old by the chain members.
func (c *Chain) reachable(root, old, repl *Node) []*Node {
	var result []*Node
	seen := sets.New[*Node]()
	var visit func(n *Node)
	visit = func(n *Node) {
		if seen.Has(n) {
			return
		}
		seen.Insert(n)
		result = append(result, n)
		member := n != old && c.index.Has(n)
		for _, p := range n.parents {
			if member && p == old {
				p = repl
			}
			visit(p)
		}
	}
	visit(root)
	return result
}

// Equal checks the structural equality of two chains.
// Chains without valid root are never equal.
func (c *Chain) Equal(o *Chain) bool {
	if c == nil || o == nil {
		return c == o
	}
	a, err := c.Root()
	if err != nil {
		return false
	}
	b, err := o.Root()
	if err != nil {
		return false
	}
	return Equal(a, b)
}

// String provides the structural notation of the chain.
func (c *Chain) String() string {
	root, err := c.Root()
	if err != nil {
		return fmt.Sprintf("<%s>", err)
	}
	return root.String()
}

////////////////////////////////////////////////////////////////////////////////

func dependsOn(n, d *Node) bool {
	found := false
	n.walk(func(e *Node) bool {
		if e == d {
			found = true
		}
		return !found
	})
	return found
}

func findCycle(n *Node, stack ...*Node) []*Node {
	if i := slices.Index(stack, n); i >= 0 {
		return append(slices.Clone(stack[i:]), n)
	}
	stack = append(stack, n)
	for _, p := range n.parents {
		if cycle := findCycle(p, stack...); cycle != nil {
			return cycle
		}
	}
	return nil
}

func describe(nodes []*Node) string {
	s := ""
	for i, n := range nodes {
		if i > 0 {
			s += ", "
		}
		s += n.Type()
	}
	return s
}
