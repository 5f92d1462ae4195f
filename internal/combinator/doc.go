// Package combinator enumerates cipher machine configurations that satisfy
// partial knowledge of a key.
//
// Every generator is an iter.Seq with a fixed, reproducible order, so two
// searches over the same constraints visit candidates in the same sequence.
// Each yielded slice is freshly allocated and may be retained by the caller.
//
// Closed-form counts are provided alongside the generators for reporting the
// size of a search without walking it.
package combinator
