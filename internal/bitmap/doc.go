// Package bitmap holds the small set of roaring helpers the graph store and the
// traversal algebra share.
//
// Every helper that combines masks returns a freshly allocated bitmap. Inputs
// are never mutated, so a mask captured by a selection or a snapshot stays
// frozen no matter what later steps do with it.
//
// nil is accepted wherever a mask is expected and behaves like an empty mask.
// This is how unregistered labels take part in set algebra.
package bitmap
