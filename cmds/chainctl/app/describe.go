package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/gp"
)

type Describe struct {
	cmd *cobra.Command

	mainopts *Options
}

type Description struct {
	Name        string      `json:"name,omitempty"`
	Fingerprint string      `json:"fingerprint"`
	Nodes       int         `json:"nodes"`
	Depth       int         `json:"depth"`
	Spec        *chain.Spec `json:"spec"`
}

func NewDescribe(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe {<chain>}",
		Short: "describe chains",
	}
	TweakCommand(cmd)

	c := &Describe{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	return cmd
}

func (c *Describe) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one chain expected")
	}
	format, err := GetFormat(c.mainopts.output)
	if err != nil {
		return err
	}

	var list []*Description
	for i, arg := range args {
		ch, err := LoadChain(c.cmd, c.mainopts, arg)
		if err != nil {
			return err
		}
		err = ch.Validate()
		if err != nil {
			return err
		}
		d, t, err := describe(ch)
		if err != nil {
			return err
		}
		if format != FORMAT_TEXT {
			list = append(list, d)
			continue
		}

		w := c.cmd.OutOrStdout()
		if i > 0 {
			fmt.Fprintf(w, "\n")
		}
		if d.Name != "" {
			fmt.Fprintf(w, "name:        %s\n", d.Name)
		}
		fmt.Fprintf(w, "fingerprint: %s\n", d.Fingerprint)
		fmt.Fprintf(w, "nodes:       %d\n", d.Nodes)
		fmt.Fprintf(w, "depth:       %d\n", d.Depth)
		err = t.Dump(w)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n")
	}
	if format != FORMAT_TEXT {
		if len(list) == 1 {
			return PrintObject(c.cmd.OutOrStdout(), format, list[0])
		}
		return PrintObject(c.cmd.OutOrStdout(), format, list)
	}
	return nil
}

func describe(c *chain.Chain) (*Description, *gp.TreeNode, error) {
	fp, err := c.Fingerprint()
	if err != nil {
		return nil, nil, err
	}
	spec, err := c.Spec()
	if err != nil {
		return nil, nil, err
	}
	t, err := gp.NewTree(c)
	if err != nil {
		return nil, nil, err
	}
	return &Description{
		Name:        c.Name(),
		Fingerprint: fp,
		Nodes:       c.Len(),
		Depth:       t.SubtreeDepth(),
		Spec:        spec,
	}, t, nil
}
