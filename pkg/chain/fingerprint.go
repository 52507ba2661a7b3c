package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/gowebpki/jcs"
)

type structure struct {
	Type    string       `json:"type"`
	Parents []*structure `json:"parents,omitempty"`
}

func structureOf(n *Node) *structure {
	s := &structure{Type: n.Type()}
	for _, p := range n.parents {
		s.Parents = append(s.Parents, structureOf(p))
	}
	return s
}

// Fingerprint provides a hash for the structure of the subtree.
// Structurally equal subtrees have the same fingerprint.
func Fingerprint(n *Node) (string, error) {
	if n == nil {
		return "", nil
	}
	data, err := json.Marshal(structureOf(n))
	if err != nil {
		return "", err
	}
	data, err = jcs.Transform(data)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}

// Fingerprint provides a structural hash of the chain.
// It can be used to detect structurally equal chains
// without pairwise comparison.
func (c *Chain) Fingerprint() (string, error) {
	root, err := c.Root()
	if err != nil {
		return "", err
	}
	return Fingerprint(root)
}
