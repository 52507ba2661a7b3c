package gp

import (
	"fmt"
	"io"
)

// Dump writes an indented representation of the subtree.
// Every node is annotated with its subtree depth and
// root distance.
func (n *TreeNode) Dump(w io.Writer) error {
	return dump(w, n, "")
}

func dump(w io.Writer, n *TreeNode, gap string) error {
	_, err := fmt.Fprintf(w, "%s%s[%d/%d]", gap, header(n), n.SubtreeDepth(), n.RootDistance())
	if err != nil {
		return err
	}
	if len(n.children) == 0 {
		return nil
	}
	_, err = fmt.Fprintf(w, " (")
	if err != nil {
		return err
	}
	for i, c := range n.children {
		if i > 0 {
			_, err = fmt.Fprintf(w, ",")
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "\n")
		if err != nil {
			return err
		}
		err = dump(w, c, gap+"  ")
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "\n%s)", gap)
	return err
}
