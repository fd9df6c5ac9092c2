// Package store implements the process-wide key-value table.
//
// The table follows a reader/writer split: readers load an immutable
// snapshot through an atomic pointer and are never blocked, while every
// mutation funnels through one global mutex that builds the next snapshot
// and publishes it with a single pointer swap. A writer in progress is
// invisible until published, so readers always observe either the fully
// old or fully new state for a key.
//
// Expiration is lazy and write-triggered only: SET evicts an expired
// entry it lands on, GET does not look at expirations at all. A key whose
// TTL lapses and is never written again stays readable forever.
package store
