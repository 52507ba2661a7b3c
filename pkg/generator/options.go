package generator

import (
	"github.com/mandelsoft/goutils/errors"

	"github.com/mandelsoft/chaincomposer/pkg/models"
)

const (
	DEFAULT_MAX_DEPTH = 3
	DEFAULT_MAX_ARITY = 3
)

// Options describe the shape of generated chains.
type Options struct {
	// Types are the model types used for composite nodes
	// (default: all types of the scheme).
	Types []string `json:"types,omitempty"`
	// Sources are the model types used for source nodes
	// (default: Types).
	Sources []string `json:"sources,omitempty"`
	// Inputs are the input names randomly assigned to
	// source nodes (default: the default input).
	Inputs []string `json:"inputs,omitempty"`
	// MaxDepth is the maximal subtree depth of the root.
	MaxDepth int `json:"maxDepth,omitempty"`
	// MinDepth is the minimal subtree depth of the root.
	MinDepth int `json:"minDepth,omitempty"`
	// MaxArity is the maximal number of parents of a
	// composite node.
	MaxArity int `json:"maxArity,omitempty"`
}

func (o *Options) complete(scheme models.Scheme) (*Options, error) {
	c := *o
	if len(c.Types) == 0 {
		c.Types = scheme.TypeNames()
	}
	if len(c.Sources) == 0 {
		c.Sources = c.Types
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DEFAULT_MAX_DEPTH
	}
	if c.MaxArity == 0 {
		c.MaxArity = DEFAULT_MAX_ARITY
	}

	switch {
	case len(c.Types) == 0:
		return nil, errors.New("no model types given")
	case c.MaxDepth < 0:
		return nil, errors.Newf("invalid maximal depth %d", c.MaxDepth)
	case c.MinDepth < 0 || c.MinDepth > c.MaxDepth:
		return nil, errors.Newf("invalid minimal depth %d (maximum %d)", c.MinDepth, c.MaxDepth)
	case c.MaxArity < 1:
		return nil, errors.Newf("invalid maximal arity %d", c.MaxArity)
	}
	for _, t := range append(append([]string{}, c.Types...), c.Sources...) {
		if !scheme.HasType(t) {
			return nil, errors.ErrNotFound(models.KIND_MODELTYPE, t)
		}
	}
	return &c, nil
}
