package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
)

type Match struct {
	cmd *cobra.Command

	mainopts *Options
}

type MatchEntry struct {
	Type   string `json:"type"`
	First  string `json:"first"`
	Second string `json:"second"`
}

func NewMatch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <chain> <chain>",
		Short: "show structurally equivalent nodes of two chains",
		Long: `
Starting with the root nodes of both chains, all node pairs
are shown which are located at the same position and have
the same type and number of parents in both chains.
`,
	}
	TweakCommand(cmd)

	c := &Match{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	return cmd
}

func (c *Match) Run(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("two chains expected")
	}
	a, err := LoadChain(c.cmd, c.mainopts, args[0])
	if err != nil {
		return err
	}
	b, err := LoadChain(c.cmd, c.mainopts, args[1])
	if err != nil {
		return err
	}
	ra, err := a.Root()
	if err != nil {
		return err
	}
	rb, err := b.Root()
	if err != nil {
		return err
	}

	pairs := chain.EquivalentSubtree(ra, rb)
	log.Debug("found {{count}} equivalent node pairs", "count", len(pairs))

	format, err := GetFormat(c.mainopts.output)
	if err != nil {
		return err
	}
	if format != FORMAT_TEXT {
		entries := []MatchEntry{}
		for _, p := range pairs {
			entries = append(entries, MatchEntry{
				Type:   p.A.Type(),
				First:  p.A.String(),
				Second: p.B.String(),
			})
		}
		return PrintObject(c.cmd.OutOrStdout(), format, entries)
	}
	return PrintPairs(c.cmd.OutOrStdout(), pairs)
}

func PrintPairs(w io.Writer, pairs []chain.Pair) error {
	if len(pairs) == 0 {
		fmt.Fprintf(w, "no equivalent nodes found\n")
		return nil
	}
	for _, p := range pairs {
		fmt.Fprintf(w, "%s <-> %s\n", p.A, p.B)
	}
	return nil
}
