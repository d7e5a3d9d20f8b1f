// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is keyed hashing of tokens and codes: store only the hash,
// then verify input by recomputing and comparing. Implementations (like
// HMAC-SHA256) live in this package behind a small interface.
package hash
