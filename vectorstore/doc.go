// Package vectorstore provides dense, contiguous-id storage for clustering input.
//
// The clustering engines only need three things from their input: the
// dimensionality, the row count, and read access to each vector. Store is
// exactly that surface; Dense is the canonical flat-slice implementation.
package vectorstore
