package chain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/modern-go/reflect2"

	"github.com/mandelsoft/chaincomposer/pkg/models"
)

// Input is an opaque handle to the raw data consumed
// by a source node.
type Input interface {
	GetName() string
}

// NamedInput is an input just described by a name.
type NamedInput string

func (n NamedInput) GetName() string {
	return string(n)
}

// DefaultInput is used for source nodes, if no dedicated
// input is specified.
var DefaultInput Input = NamedInput("input")

// Node is a single pipeline stage. It is either a source node
// consuming Input, or a composite node aggregating the output
// of its parents.
// The parents of a node can only be changed by a Chain
// it belongs to.
type Node struct {
	id      string
	model   models.Model
	input   Input
	parents []*Node

	chain *Chain
}

// NewSourceNode creates a node consuming raw input data.
func NewSourceNode(m models.Model, in Input) (*Node, error) {
	if reflect2.IsNil(m) {
		return nil, fmt.Errorf("%w: model required", ErrInvalidNode)
	}
	if reflect2.IsNil(in) {
		return nil, fmt.Errorf("%w: source node %q requires input", ErrInvalidNode, m.GetType())
	}
	return &Node{
		id:    uuid.NewString(),
		model: m,
		input: in,
	}, nil
}

// NewCompositeNode creates a node aggregating the output
// of the given parents in the given order.
func NewCompositeNode(m models.Model, parents ...*Node) (*Node, error) {
	if reflect2.IsNil(m) {
		return nil, fmt.Errorf("%w: model required", ErrInvalidNode)
	}
	if len(parents) == 0 {
		return nil, fmt.Errorf("%w: composite node %q requires at least one parent", ErrInvalidNode, m.GetType())
	}
	for i, p := range parents {
		if p == nil {
			return nil, fmt.Errorf("%w: parent %d of composite node %q is nil", ErrInvalidNode, i, m.GetType())
		}
	}
	return &Node{
		id:      uuid.NewString(),
		model:   m,
		parents: slices.Clone(parents),
	}, nil
}

// Id returns a unique id for the node instance.
func (n *Node) Id() string {
	return n.id
}

// Type returns the type of the wrapped model. This is the
// only model attribute relevant for structural comparisons.
func (n *Node) Type() string {
	return n.model.GetType()
}

func (n *Node) Model() models.Model {
	return n.model
}

// Input returns the input of a source node or nil
// for composite nodes.
func (n *Node) Input() Input {
	return n.input
}

func (n *Node) IsSource() bool {
	return len(n.parents) == 0
}

func (n *Node) Parents() []*Node {
	return slices.Clone(n.parents)
}

func (n *Node) NumParents() int {
	return len(n.parents)
}

// Parent returns the parent with the given index or nil.
func (n *Node) Parent(i int) *Node {
	if i < 0 || i >= len(n.parents) {
		return nil
	}
	return n.parents[i]
}

// Chain returns the chain the node belongs to.
func (n *Node) Chain() *Chain {
	return n.chain
}

// Subtree returns all nodes reachable from this node
// (including itself) in pre-order. Shared nodes are
// reported only once.
func (n *Node) Subtree() []*Node {
	var result []*Node
	seen := map[*Node]struct{}{}
	n.walk(func(e *Node) bool {
		if _, ok := seen[e]; ok {
			return false
		}
		seen[e] = struct{}{}
		result = append(result, e)
		return true
	})
	return result
}

// walk visits the node in pre-order. The descent into the
// parents of a visited node is skipped, if f returns false.
func (n *Node) walk(f func(n *Node) bool) {
	if !f(n) {
		return
	}
	for _, p := range n.parents {
		p.walk(f)
	}
}

// Copy provides a deep copy of the node and its subtree
// not belonging to any chain. Models are copied with the
// given scheme (default: models.DefaultScheme), inputs
// are shared. Nodes shared in the subtree are shared
// in the copy, too.
func (n *Node) Copy(scheme ...models.Scheme) (*Node, error) {
	s := models.DefaultScheme
	if len(scheme) > 0 && scheme[0] != nil {
		s = scheme[0]
	}
	return n.copy(s, map[*Node]*Node{})
}

func (n *Node) copy(s models.Scheme, copies map[*Node]*Node) (*Node, error) {
	if c := copies[n]; c != nil {
		return c, nil
	}
	m, err := s.Copy(n.model)
	if err != nil {
		return nil, err
	}
	c := &Node{
		id:    uuid.NewString(),
		model: m,
		input: n.input,
	}
	for _, p := range n.parents {
		pc, err := p.copy(s, copies)
		if err != nil {
			return nil, err
		}
		c.parents = append(c.parents, pc)
	}
	copies[n] = c
	return c, nil
}

// String provides the structural notation of the subtree
// rooted at this node.
func (n *Node) String() string {
	return notation(n, false)
}
