// Package breaker recovers cipher machine settings by exhaustive search.
//
// A search is described by Constraints: for every dimension of the key the
// caller lists the values still considered possible. The Breaker walks the
// product of those sets in a fixed order, outermost first:
//
//	plugboard assignment -> reflector -> reflector rewiring -> rotor order -> start positions -> ring settings
//
// decoding the ciphertext under each candidate. A decode that contains at
// least one crib (or any decode, when no cribs are given) is scored by the
// dictionary words it contains, and the best decode is kept along with the
// settings that produced it.
//
// # Concurrency
//
// The first four dimensions are cut into jobs and fanned out to workers,
// each with a private machine.Machine. Position and ring-setting tuples are
// shared read-only. Worker results are reduced with a total order (score,
// then plaintext, then iteration order), so the outcome does not depend on
// the number of workers or on scheduling.
//
// # States
//
// A Breaker moves Idle -> GeneratingCombinations -> Searching -> Done for
// each call to Break. Break is not safe to call concurrently on one Breaker.
package breaker
