// Package textutil provides Unicode-aware text helpers shared by the
// commentary engine and its collaborators.
//
// The primary use cases are:
//   - Translating byte offsets produced by regexp into character offsets
//   - Slicing and truncating text by characters rather than bytes
//   - Case and accent insensitive comparison of names ("Mbappé" vs "mbappe")
//   - Sanitizing tokens for safe filesystem use
package textutil
