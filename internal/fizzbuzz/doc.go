// Package fizzbuzz implements the rule evaluation engine: a generalized
// FizzBuzz in which an ordered set of rule blocks (divisibility, primality,
// Fibonacci membership, inclusive ranges) annotates a contiguous span of
// integers.
//
// The engine is deliberately pure. Evaluate and Generate perform no I/O,
// read no clock and hold no locks; the only side-effecting boundary is the
// optional progress callback handed to Generate. Callers that need
// cancellation, channels or timeouts wrap the engine (see the orchestration
// package) rather than threading those concerns through it.
//
// Blocks are evaluated in ascending Order with stable ties, and the words of
// every matching block concatenate in that same order to form the output
// text. Classification of the outcome (Fizz, Buzz, FizzBuzz, combination,
// ...) depends only on the matched blocks' kinds and words, never on their
// names or identifiers.
package fizzbuzz
