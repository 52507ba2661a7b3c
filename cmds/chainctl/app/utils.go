package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
)

const (
	FORMAT_TEXT = "text"
	FORMAT_YAML = "yaml"
	FORMAT_JSON = "json"
)

func GetFormat(f string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case "", FORMAT_TEXT:
		return FORMAT_TEXT, nil
	case FORMAT_YAML:
		return FORMAT_YAML, nil
	case FORMAT_JSON:
		return FORMAT_JSON, nil
	}
	return "", errors.Newf("invalid output format %q", f)
}

func TweakCommand(cmd *cobra.Command) {
	cmd.DisableFlagsInUseLine = true
	cmd.SilenceUsage = true
}

// LoadChain provides the chain described by a command argument.
// It is either a chain specification file, or, if no such
// file exists, a chain notation. "-" reads a specification
// from standard input.
func LoadChain(cmd *cobra.Command, opts *Options, arg string) (*chain.Chain, error) {
	var data []byte
	var err error

	if arg == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		if _, serr := opts.fs.Stat(arg); serr != nil {
			c, err := chain.Parse(arg, opts.scheme)
			if err != nil {
				return nil, errors.Wrapf(err, "no file and invalid chain notation")
			}
			return c, nil
		}
		data, err = vfs.ReadFile(opts.fs, arg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read chain %q", arg)
	}

	s, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot substitute environment in %q", arg)
	}
	c, err := chain.ParseSpec([]byte(s), opts.scheme)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", arg)
	}
	log.Debug("loaded chain {{name}} from {{file}}", "name", c.Name(), "file", arg)
	return c, nil
}

// PrintChains outputs a list of chains in the given format.
func PrintChains(w io.Writer, format string, chains ...*chain.Chain) error {
	switch format {
	case FORMAT_TEXT:
		for _, c := range chains {
			n, err := c.Notation(true)
			if err != nil {
				return err
			}
			if c.Name() != "" {
				fmt.Fprintf(w, "%s: %s\n", c.Name(), n)
			} else {
				fmt.Fprintf(w, "%s\n", n)
			}
		}
		return nil
	default:
		var specs []*chain.Spec
		for _, c := range chains {
			s, err := c.Spec()
			if err != nil {
				return err
			}
			specs = append(specs, s)
		}
		if len(specs) == 1 {
			return PrintObject(w, format, specs[0])
		}
		return PrintObject(w, format, specs)
	}
}

// PrintObject outputs an object in the given
// serialization format.
func PrintObject(w io.Writer, format string, o interface{}) error {
	var data []byte
	var err error

	switch format {
	case FORMAT_JSON:
		data, err = json.Marshal(o)
	default:
		data, err = yaml.Marshal(o)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", strings.TrimRight(string(data), "\n"))
	return nil
}
