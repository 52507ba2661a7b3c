package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mandelsoft/goutils/errors"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/generator"
	"github.com/mandelsoft/chaincomposer/pkg/gp"
)

const KIND_TREEPATH = "tree path"

type Swap struct {
	cmd *cobra.Command

	mainopts *Options
	first    string
	second   string
	seed     int64
}

func NewSwap(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap <chain> <chain>",
		Short: "recombine two chains by swapping subtrees",
		Long: `
Two new chains are created by exchanging a subtree of the first
chain with a subtree of the second chain. The subtrees are given
by paths of parent indices separated by a slash, for example 0/1
for the second parent of the first parent of the root node.
Without paths, randomly chosen subtrees with the same distance
from the root are exchanged.
`,
	}
	TweakCommand(cmd)

	c := &Swap{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.first, "first", "a", "", "path of subtree in first chain")
	flags.StringVarP(&c.second, "second", "b", "", "path of subtree in second chain")
	flags.Int64VarP(&c.seed, "seed", "s", 0, "random seed (default: current time)")
	return cmd
}

func (c *Swap) Run(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("two chains expected")
	}
	format, err := GetFormat(c.mainopts.output)
	if err != nil {
		return err
	}
	a, err := LoadChain(c.cmd, c.mainopts, args[0])
	if err != nil {
		return err
	}
	b, err := LoadChain(c.cmd, c.mainopts, args[1])
	if err != nil {
		return err
	}

	flags := c.cmd.Flags()
	if !flags.Changed("seed") {
		c.seed = time.Now().UnixNano()
	}
	gen, err := generator.New(c.seed, nil, c.mainopts.scheme)
	if err != nil {
		return err
	}

	var ca, cb *chain.Chain
	if flags.Changed("first") || flags.Changed("second") {
		ca, cb, err = c.swap(a, b)
		if err == nil {
			ca.SetName(gen.Name())
			cb.SetName(gen.Name())
		}
	} else {
		ca, cb, err = gen.Crossover(a, b)
	}
	if err != nil {
		return err
	}
	return PrintChains(c.cmd.OutOrStdout(), format, ca, cb)
}

func (c *Swap) swap(a, b *chain.Chain) (*chain.Chain, *chain.Chain, error) {
	ta, err := gp.NewTree(a)
	if err != nil {
		return nil, nil, err
	}
	tb, err := gp.NewTree(b)
	if err != nil {
		return nil, nil, err
	}
	x, err := TreeNodeForPath(ta, c.first)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "first chain")
	}
	y, err := TreeNodeForPath(tb, c.second)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "second chain")
	}
	err = gp.SwapNodes(x, y)
	if err != nil {
		return nil, nil, err
	}
	ca, err := gp.Flatten(ta, c.mainopts.scheme)
	if err != nil {
		return nil, nil, err
	}
	cb, err := gp.Flatten(tb, c.mainopts.scheme)
	if err != nil {
		return nil, nil, err
	}
	return ca, cb, nil
}

// TreeNodeForPath resolves a path of child indices
// separated by slashes. The empty path denotes the root.
func TreeNodeForPath(root *gp.TreeNode, path string) (*gp.TreeNode, error) {
	n := root
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return n, nil
	}
	for _, e := range strings.Split(path, "/") {
		i, err := strconv.Atoi(strings.TrimSpace(e))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid path %q", path)
		}
		n = n.Child(i)
		if n == nil {
			return nil, errors.ErrNotFound(KIND_TREEPATH, path)
		}
	}
	return n, nil
}
