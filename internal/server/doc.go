// Package server accepts client connections and drives the
// request/reply cycle over RESP.
//
// One goroutine owns one connection end to end: it accumulates raw
// bytes, asks the codec for exactly one value per cycle, runs the
// command grammar and the storage engine, and writes the encoded reply
// back in full before touching the buffer again. Requests on one
// connection are strictly sequential and pipelined bytes wait for the
// next cycle.
//
// There are no deadlines and no cancellation on the command path: a
// dispatched command always runs to completion, and a stalled peer
// simply parks its goroutine until the socket closes.
package server
