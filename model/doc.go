// Package model defines core types used throughout graphgo.
//
// # Identity Types
//
//   - Vertex: dense, reusable vertex identifier (uint32)
//   - Edge: dense, reusable edge identifier (uint32)
//   - Endpoints: the (source, target) pair every edge carries
//
// Identifiers are allocated from zero upwards. A removed identifier is handed
// out again by the next allocation of the same kind, so an identifier alone does
// not name an entity across a removal.
//
// # Selection Kinds
//
//   - Kind: discriminates captured snapshots (vertex, edge, unknown)
package model
