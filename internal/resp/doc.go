// Package resp implements the Redis serialization protocol (RESP) codec.
//
// The codec is stateless and incremental: Decode consumes exactly one value
// from the front of a byte buffer and reports how many bytes it used, so a
// caller can keep appending partial network reads and retry until a full
// value is available. "Not enough bytes yet" (ErrIncomplete) is strictly
// separated from "syntactically invalid" (ErrMalformed) throughout the
// grammar, including inside nested containers.
//
// All fourteen RESP value kinds are supported for both decoding and
// encoding, with bulk payloads kept binary-safe.
package resp
