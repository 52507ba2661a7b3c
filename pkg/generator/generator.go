package generator

import (
	"math/rand"

	"github.com/goombaio/namegenerator"
	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/gp"
	"github.com/mandelsoft/chaincomposer/pkg/models"
)

// Generator creates random well-formed chains. For the same
// seed and options a generator creates the same sequence
// of chains.
// A Generator is not thread-safe.
type Generator struct {
	opts   *Options
	scheme models.Scheme
	rand   *rand.Rand
	names  namegenerator.Generator
}

func New(seed int64, opts *Options, scheme ...models.Scheme) (*Generator, error) {
	s := general.OptionalDefaulted(models.DefaultScheme, scheme...)
	if opts == nil {
		opts = &Options{}
	}
	o, err := opts.complete(s)
	if err != nil {
		return nil, err
	}
	return &Generator{
		opts:   o,
		scheme: s,
		rand:   rand.New(rand.NewSource(seed)),
		names:  namegenerator.NewNameGenerator(seed),
	}, nil
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return *g.opts
}

// Name provides a new random chain name.
func (g *Generator) Name() string {
	return g.names.Generate()
}

// Tree creates a random tree with a subtree depth between
// the configured minimal and maximal depth.
func (g *Generator) Tree() (*gp.TreeNode, error) {
	depth := g.opts.MinDepth
	if g.opts.MaxDepth > depth {
		depth += g.rand.Intn(g.opts.MaxDepth - depth + 1)
	}
	return g.tree(depth)
}

// Chain creates a random named chain.
func (g *Generator) Chain() (*chain.Chain, error) {
	t, err := g.Tree()
	if err != nil {
		return nil, err
	}
	c, err := gp.Flatten(t, g.scheme)
	if err != nil {
		return nil, err
	}
	c.SetName(g.Name())
	log.Debug("generated chain {{name}}: {{chain}}", "name", c.Name(), "chain", c.String())
	return c, nil
}

// tree creates a tree with exactly the given subtree depth.
func (g *Generator) tree(depth int) (*gp.TreeNode, error) {
	if depth == 0 {
		m, err := g.scheme.CreateModel(g.choose(g.opts.Sources))
		if err != nil {
			return nil, err
		}
		in := chain.DefaultInput
		if len(g.opts.Inputs) > 0 {
			in = chain.NamedInput(g.choose(g.opts.Inputs))
		}
		return gp.NewSource(m, in)
	}

	m, err := g.scheme.CreateModel(g.choose(g.opts.Types))
	if err != nil {
		return nil, err
	}
	arity := 1 + g.rand.Intn(g.opts.MaxArity)
	deep := g.rand.Intn(arity)

	children := make([]*gp.TreeNode, arity)
	for i := range children {
		d := depth - 1
		if i != deep {
			d = g.rand.Intn(depth)
		}
		children[i], err = g.tree(d)
		if err != nil {
			return nil, err
		}
	}
	return gp.NewComposite(m, children...)
}

func (g *Generator) choose(list []string) string {
	return list[g.rand.Intn(len(list))]
}

// Crossover creates two offspring chains by exchanging a random
// subtree of the chains a and b. The exchanged subtrees are chosen
// with the same root distance. The given chains are not modified.
func (g *Generator) Crossover(a, b *chain.Chain) (*chain.Chain, *chain.Chain, error) {
	ta, err := gp.NewTree(a)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "first chain")
	}
	tb, err := gp.NewTree(b)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "second chain")
	}

	limit := min(ta.SubtreeDepth(), tb.SubtreeDepth())
	if limit == 0 {
		return nil, nil, errors.New("crossover requires chains with composite root")
	}
	h := 1 + g.rand.Intn(limit)
	na := ta.NodesAtDistance(h)
	nb := tb.NodesAtDistance(h)
	x, y := na[g.rand.Intn(len(na))], nb[g.rand.Intn(len(nb))]

	log.Debug("crossover at distance {{distance}}: {{x}} <-> {{y}}", "distance", h, "x", x.String(), "y", y.String())
	err = gp.SwapNodes(x, y)
	if err != nil {
		return nil, nil, err
	}
	ca, err := gp.Flatten(ta, g.scheme)
	if err != nil {
		return nil, nil, err
	}
	cb, err := gp.Flatten(tb, g.scheme)
	if err != nil {
		return nil, nil, err
	}
	ca.SetName(g.Name())
	cb.SetName(g.Name())
	return ca, cb, nil
}
