package gp

import (
	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/models"
)

// Flatten converts a tree into a new chain. Every tree node
// is mapped to a new chain node with a deep copy of its model,
// so the chain does not share state with the tree or any other
// chain. The nodes are added to the chain in pre-order.
// Models are copied using the given scheme (default:
// models.DefaultScheme).
func Flatten(root *TreeNode, scheme ...models.Scheme) (*chain.Chain, error) {
	if root == nil {
		return nil, errors.New("tree root required")
	}
	s := general.OptionalDefaulted(models.DefaultScheme, scheme...)

	nodes := map[*TreeNode]*chain.Node{}
	_, err := flatten(root, s, nodes)
	if err != nil {
		return nil, err
	}

	c := chain.New()
	for _, t := range root.PreOrder() {
		err = c.AddNode(nodes[t])
		if err != nil {
			return nil, err
		}
	}
	log.Debug("flattened tree to chain with {{size}} nodes", "size", c.Len())
	return c, nil
}

func flatten(t *TreeNode, s models.Scheme, nodes map[*TreeNode]*chain.Node) (*chain.Node, error) {
	m, err := s.Copy(t.model)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot copy model of %s node", t.Type())
	}
	var n *chain.Node
	if len(t.children) == 0 {
		n, err = chain.NewSourceNode(m, t.input)
	} else {
		parents := make([]*chain.Node, len(t.children))
		for i, c := range t.children {
			parents[i], err = flatten(c, s, nodes)
			if err != nil {
				return nil, err
			}
		}
		n, err = chain.NewCompositeNode(m, parents...)
	}
	if err != nil {
		return nil, err
	}
	nodes[t] = n
	return n, nil
}
