// Package cmap provides a concurrent, string-keyed sharded map.
//
// Keys are distributed across a power-of-two number of shards via
// murmur3, each shard guarded by its own RWMutex. The map suits
// bookkeeping with many independent keys and low cross-key coupling,
// such as per-client rate limiter state.
//
// Usage:
//
//	m := cmap.New[*rate.Limiter]()
//	lim := m.GetOrCompute(ip, newLimiter)
//
// All operations are safe for concurrent use.
package cmap
