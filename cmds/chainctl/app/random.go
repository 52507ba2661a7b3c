package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/generator"
)

type Random struct {
	cmd *cobra.Command

	mainopts *Options
	seed     int64
	opts     generator.Options
}

func NewRandom(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random [<count>]",
		Short: "generate random chains",
		Long: `
Random chains are generated for the given model types. Defaults for
the generator options can be configured in the config file.
`,
	}
	TweakCommand(cmd)

	c := &Random{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	c.AddFlags(cmd.Flags())
	return cmd
}

func (c *Random) AddFlags(flags *pflag.FlagSet) {
	flags.Int64VarP(&c.seed, "seed", "s", 0, "random seed (default: current time)")
	flags.StringSliceVarP(&c.opts.Types, "types", "t", nil, "model types for composite nodes")
	flags.StringSliceVarP(&c.opts.Sources, "sources", "S", nil, "model types for source nodes")
	flags.StringSliceVarP(&c.opts.Inputs, "inputs", "i", nil, "input names for source nodes")
	flags.IntVarP(&c.opts.MaxDepth, "max-depth", "d", 0, "maximal depth")
	flags.IntVarP(&c.opts.MinDepth, "min-depth", "m", 0, "minimal depth")
	flags.IntVarP(&c.opts.MaxArity, "max-arity", "a", 0, "maximal number of parents")
}

func (c *Random) Run(args []string) error {
	count := 1
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		count = n
	default:
		return fmt.Errorf("at most one argument expected")
	}
	format, err := GetFormat(c.mainopts.output)
	if err != nil {
		return err
	}

	flags := c.cmd.Flags()
	if !flags.Changed("seed") {
		c.seed = time.Now().UnixNano()
	}
	gen, err := generator.New(c.seed, c.options(), c.mainopts.scheme)
	if err != nil {
		return err
	}

	var chains []*chain.Chain
	for i := 0; i < count; i++ {
		ch, err := gen.Chain()
		if err != nil {
			return err
		}
		chains = append(chains, ch)
	}
	return PrintChains(c.cmd.OutOrStdout(), format, chains...)
}

// options merges the configured generator options
// with the command line flags.
func (c *Random) options() *generator.Options {
	opts := generator.Options{}
	if c.mainopts.config != nil && c.mainopts.config.Generator != nil {
		opts = *c.mainopts.config.Generator
	}
	flags := c.cmd.Flags()
	if flags.Changed("types") {
		opts.Types = c.opts.Types
	}
	if flags.Changed("sources") {
		opts.Sources = c.opts.Sources
	}
	if flags.Changed("inputs") {
		opts.Inputs = c.opts.Inputs
	}
	if flags.Changed("max-depth") {
		opts.MaxDepth = c.opts.MaxDepth
	}
	if flags.Changed("min-depth") {
		opts.MinDepth = c.opts.MinDepth
	}
	if flags.Changed("max-arity") {
		opts.MaxArity = c.opts.MaxArity
	}
	return &opts
}
