package chain

import (
	"github.com/mandelsoft/goutils/errors"
)

const KIND_NODE = "node"

var (
	// ErrInvalidNode is used for node invariant violations.
	ErrInvalidNode = errors.New("invalid node")
	// ErrInvalidChain is used for chain invariant violations.
	ErrInvalidChain = errors.New("invalid chain")
	// ErrAlreadyInChain is reported for nodes which are
	// already part of a chain.
	ErrAlreadyInChain = errors.New("node already part of a chain")
)
