// Package kernel provides the shared value objects of the lifebank domain.
//
// The package includes:
//   - Identity: an opaque, validated identifier of a party (hospital,
//     administrator, patient) compared by value
//
// Identities are immutable and safe for concurrent use.
package kernel
