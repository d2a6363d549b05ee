// Package pipeline streams pairwise LD rows in chunks, resolves both
// endpoints against the reference index, and folds survivors into a
// triplet collection.
//
// The fold is single-pass and chunk-size invariant: batching only bounds
// memory, never changes the result.
package pipeline
