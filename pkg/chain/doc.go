// Package chain provides the graph model for machine learning
// pipelines (chains) and the structural algorithms used by
// an evolutionary pipeline search.
//
// A chain is a set of nodes with a single root, the final output
// of the pipeline. Source nodes consume raw input data, composite
// nodes aggregate the output of an ordered list of parent nodes.
// Every node wraps an opaque model (see package models).
//
// Structural equality (Equal) and equivalent subtree detection
// (EquivalentSubtree) only consider the model types and the
// topology, hyperparameters of the wrapped models are ignored.
//
// Chains can be described by a compact textual notation
//
//	XGBoost(XGBoost(LogisticRegression,LDA),KNN[neighbors=3](LogisticRegression,LDA@train))
//
// or by a YAML specification (see Spec).
package chain
