package gp

import (
	"fmt"
	"slices"

	"github.com/mandelsoft/goutils/general"
	"github.com/modern-go/reflect2"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/models"
)

// TreeNode is a node of a genetic programming tree. Its children
// mirror the parents of a chain node. In contrast to chain nodes
// every tree node has exactly one user, its parent.
// The parent is nil only for the root of a tree.
type TreeNode struct {
	model    models.Model
	input    chain.Input
	children []*TreeNode
	parent   *TreeNode
}

// NewSource creates a leaf consuming raw input data.
func NewSource(m models.Model, in chain.Input) (*TreeNode, error) {
	if reflect2.IsNil(m) {
		return nil, fmt.Errorf("%w: model required", chain.ErrInvalidNode)
	}
	if reflect2.IsNil(in) {
		return nil, fmt.Errorf("%w: source node %q requires input", chain.ErrInvalidNode, m.GetType())
	}
	return &TreeNode{model: m, input: in}, nil
}

// NewComposite creates an inner tree node for the given children.
// The children must be roots of their trees. They become
// attached to the new node.
func NewComposite(m models.Model, children ...*TreeNode) (*TreeNode, error) {
	if reflect2.IsNil(m) {
		return nil, fmt.Errorf("%w: model required", chain.ErrInvalidNode)
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: composite node %q requires at least one child", chain.ErrInvalidNode, m.GetType())
	}
	for i, c := range children {
		switch {
		case c == nil:
			return nil, fmt.Errorf("%w: child %d of composite node %q is nil", chain.ErrInvalidNode, i, m.GetType())
		case c.parent != nil:
			return nil, fmt.Errorf("%w: child %d (%s) of composite node %q is already attached", chain.ErrInvalidNode, i, c.Type(), m.GetType())
		case slices.Index(children[:i], c) >= 0:
			return nil, fmt.Errorf("%w: child %d (%s) of composite node %q used twice", chain.ErrInvalidNode, i, c.Type(), m.GetType())
		}
	}
	n := &TreeNode{model: m, children: slices.Clone(children)}
	for _, c := range n.children {
		c.parent = n
	}
	return n, nil
}

// NewTree wraps a chain starting at its root.
// Nodes shared in the chain get a dedicated tree node
// for every use. The models are not copied.
func NewTree(c *chain.Chain) (*TreeNode, error) {
	root, err := c.Root()
	if err != nil {
		return nil, err
	}
	t := FromNode(root)
	log.Debug("created tree with {{size}} nodes for chain {{chain}}", "size", t.Size(), "chain", c.Name())
	return t, nil
}

// FromNode wraps the subtree of a chain node.
func FromNode(n *chain.Node) *TreeNode {
	return fromNode(n, nil)
}

func fromNode(n *chain.Node, parent *TreeNode) *TreeNode {
	t := &TreeNode{
		model:  n.Model(),
		input:  n.Input(),
		parent: parent,
	}
	for _, p := range n.Parents() {
		t.children = append(t.children, fromNode(p, t))
	}
	return t
}

func (n *TreeNode) Model() models.Model {
	return n.model
}

func (n *TreeNode) Type() string {
	return n.model.GetType()
}

func (n *TreeNode) Input() chain.Input {
	return n.input
}

func (n *TreeNode) IsSource() bool {
	return len(n.children) == 0
}

func (n *TreeNode) Children() []*TreeNode {
	return slices.Clone(n.children)
}

func (n *TreeNode) NumChildren() int {
	return len(n.children)
}

// Child returns the child with the given index or nil.
func (n *TreeNode) Child(i int) *TreeNode {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Parent returns the node using this node, or nil for the root.
func (n *TreeNode) Parent() *TreeNode {
	return n.parent
}

func (n *TreeNode) IsRoot() bool {
	return n.parent == nil
}

// Root returns the root of the tree the node belongs to.
func (n *TreeNode) Root() *TreeNode {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// IsAncestorOf checks whether the node is a proper
// ancestor of the given node.
func (n *TreeNode) IsAncestorOf(o *TreeNode) bool {
	if o == nil {
		return false
	}
	for p := o.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// PreOrder returns the nodes of the subtree: the node first,
// followed by the complete subtrees of its children in
// child order.
func (n *TreeNode) PreOrder() []*TreeNode {
	var result []*TreeNode
	n.walk(0, func(e *TreeNode, _ int) {
		result = append(result, e)
	})
	return result
}

// walk visits the subtree in pre-order. The level is
// incremented for every step down to a child.
func (n *TreeNode) walk(level int, f func(n *TreeNode, level int)) {
	f(n, level)
	for _, c := range n.children {
		c.walk(level+1, f)
	}
}

// Size returns the number of nodes in the subtree.
func (n *TreeNode) Size() int {
	size := 1
	for _, c := range n.children {
		size += c.Size()
	}
	return size
}

// Copy provides a deep copy of the subtree as a new tree.
// Models are copied using the given scheme (default:
// models.DefaultScheme).
func (n *TreeNode) Copy(scheme ...models.Scheme) (*TreeNode, error) {
	return n.copy(general.OptionalDefaulted(models.DefaultScheme, scheme...), nil)
}

func (n *TreeNode) copy(s models.Scheme, parent *TreeNode) (*TreeNode, error) {
	m, err := s.Copy(n.model)
	if err != nil {
		return nil, err
	}
	c := &TreeNode{
		model:  m,
		input:  n.input,
		parent: parent,
	}
	for _, e := range n.children {
		ec, err := e.copy(s, c)
		if err != nil {
			return nil, err
		}
		c.children = append(c.children, ec)
	}
	return c, nil
}

// String provides the structural notation of the subtree.
func (n *TreeNode) String() string {
	s := header(n)
	if len(n.children) > 0 {
		sep := "("
		for _, c := range n.children {
			s += sep + c.String()
			sep = ","
		}
		s += ")"
	}
	return s
}

func header(n *TreeNode) string {
	s := n.Type()
	if n.input != nil && n.input.GetName() != chain.DefaultInput.GetName() {
		s += "@" + n.input.GetName()
	}
	return s
}
