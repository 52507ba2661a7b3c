// Package models provides the type scheme for the learning
// algorithms wrapped by chain nodes.
//
// A model is opaque to the structural algorithms. They only use
// its type name. The scheme maps type names to Go types, so that
// models can be created by name, decoded from YAML/JSON
// and deep copied for independently evolving chains.
package models
