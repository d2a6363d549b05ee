// Package matfile writes MAT-file level 5 containers.
//
// Only the subset needed for sparse matrix export is implemented:
// little-endian, uncompressed int32 and double column vectors. Each
// variable becomes one miMATRIX element after the 128-byte header.
package matfile
