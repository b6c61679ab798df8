// Package hashkey derives the stable ordering keys used by the split pipeline.
//
// Contents
//
//   - Seeded, salted 64-bit keys (Key, SHA256, BLAKE2b, Lookup)
//   - Deterministic total orders built on those keys (SortIDs)
//   - Short hex fingerprints of a split's inputs for manifests (Fingerprint)
//
// # Notes
//
// A key is the first 8 bytes of a digest of "{seed}:{salt}:{id}", read as a
// big-endian integer, which equals the first 16 hex digits of the digest.
// SHA256 is the default; keys recorded by earlier pipeline runs stay valid.
// Keys establish order only; they are never used for security.
package hashkey
