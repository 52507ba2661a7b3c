package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

type Equal struct {
	cmd *cobra.Command

	mainopts *Options
	quiet    bool
}

type EqualResult struct {
	Equal        bool   `json:"equal"`
	Fingerprint  string `json:"fingerprint"`
	Fingerprint2 string `json:"fingerprint2"`
}

func NewEqual(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equal <chain> <chain>",
		Short: "check two chains for structural equality",
		Long: `
Two chains are structurally equal, if their root nodes are equal.
Nodes are equal, if they use the same model type and have equal
parents in the same order. Hyperparameters and inputs are ignored.
`,
	}
	TweakCommand(cmd)

	c := &Equal{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "report difference by error only")
	return cmd
}

func (c *Equal) Run(args []string) error {
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

	result := &EqualResult{Equal: a.Equal(b)}
	result.Fingerprint, err = a.Fingerprint()
	if err != nil {
		return err
	}
	result.Fingerprint2, err = b.Fingerprint()
	if err != nil {
		return err
	}

	if c.quiet {
		if !result.Equal {
			return fmt.Errorf("chains are different")
		}
		return nil
	}

	format, err := GetFormat(c.mainopts.output)
	if err != nil {
		return err
	}
	if format != FORMAT_TEXT {
		return PrintObject(c.cmd.OutOrStdout(), format, result)
	}
	if result.Equal {
		fmt.Fprintf(c.cmd.OutOrStdout(), "equal\n")
	} else {
		fmt.Fprintf(c.cmd.OutOrStdout(), "different\n")
	}
	return nil
}
