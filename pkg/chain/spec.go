package chain

import (
	"fmt"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/chaincomposer/pkg/models"
)

// Spec is the serializable description of a chain.
type Spec struct {
	Name string    `json:"name,omitempty"`
	Root *NodeSpec `json:"root"`
}

// NodeSpec is the serializable description of a node
// and its subtree.
type NodeSpec struct {
	Type    string                 `json:"type"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Input   string                 `json:"input,omitempty"`
	Parents []*NodeSpec            `json:"parents,omitempty"`
}

// ParseSpec decodes a YAML or JSON chain specification.
func ParseSpec(data []byte, scheme ...models.Scheme) (*Chain, error) {
	var spec Spec

	err := yaml.UnmarshalStrict(data, &spec)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid chain specification")
	}
	return FromSpec(&spec, scheme...)
}

// FromSpec creates a chain from a specification.
// The nodes are added in pre-order.
func FromSpec(spec *Spec, scheme ...models.Scheme) (*Chain, error) {
	if spec == nil || spec.Root == nil {
		return nil, fmt.Errorf("%w: root node specification required", ErrInvalidChain)
	}
	n, err := nodeFromSpec(spec.Root, general.OptionalDefaulted(models.DefaultScheme, scheme...), "root")
	if err != nil {
		return nil, err
	}
	c := New(spec.Name)
	err = c.AddSubtree(n)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func nodeFromSpec(spec *NodeSpec, scheme models.Scheme, path string) (*Node, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: %s: node specification missing", ErrInvalidNode, path)
	}
	m, err := scheme.Configure(spec.Type, spec.Params)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if len(spec.Parents) == 0 {
		input := DefaultInput
		if spec.Input != "" {
			input = NamedInput(spec.Input)
		}
		return NewSourceNode(m, input)
	}
	if spec.Input != "" {
		return nil, fmt.Errorf("%w: %s: composite node %q must not have an input", ErrInvalidNode, path, spec.Type)
	}
	var parents []*Node
	for i, p := range spec.Parents {
		n, err := nodeFromSpec(p, scheme, fmt.Sprintf("%s.parents[%d]", path, i))
		if err != nil {
			return nil, err
		}
		parents = append(parents, n)
	}
	return NewCompositeNode(m, parents...)
}

// Spec provides the specification for a chain.
// Nodes shared in the chain are described multiple times.
func (c *Chain) Spec() (*Spec, error) {
	root, err := c.Root()
	if err != nil {
		return nil, err
	}
	n, err := root.Spec()
	if err != nil {
		return nil, err
	}
	return &Spec{Name: c.name, Root: n}, nil
}

// Spec provides the specification for a node and its subtree.
func (n *Node) Spec() (*NodeSpec, error) {
	params, err := ModelParams(n.model)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot get parameters of %s node %s", n.Type(), n.Id())
	}
	if len(params) == 0 {
		params = nil
	}
	spec := &NodeSpec{
		Type:   n.Type(),
		Params: params,
	}
	if n.input != nil && n.input.GetName() != DefaultInput.GetName() {
		spec.Input = n.input.GetName()
	}
	for _, p := range n.parents {
		ps, err := p.Spec()
		if err != nil {
			return nil, err
		}
		spec.Parents = append(spec.Parents, ps)
	}
	return spec, nil
}
