// Package gp provides the genetic programming view of a chain.
// A TreeNode wraps a node payload and adds a parent back reference,
// so that subtrees of different candidates can be exchanged by
// SwapNodes. A tree is converted back to a chain with Flatten.
package gp
