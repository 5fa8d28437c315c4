package fizzbuzz

// Set is a membership set of integers, used for precomputed Fibonacci
// lookups during evaluation.
type Set map[int]struct{}

// Contains reports whether n is a member. A nil Set contains nothing.
func (s Set) Contains(n int) bool {
	_, ok := s[n]
	return ok
}

// FibonacciSet returns the set of Fibonacci numbers up to and including
// maxValue, built from the sequence 1, 1, 2, 3, 5, 8, ... A maxValue below 1
// yields the empty set. The two-variable walk needs O(log maxValue)
// iterations since the sequence grows geometrically.
func FibonacciSet(maxValue int) Set {
	set := make(Set)
	if maxValue < 1 {
		return set
	}
	a, b := 1, 1
	for a <= maxValue {
		set[a] = struct{}{}
		next := a + b
		if next < b { // int overflow; no larger member fits
			break
		}
		a, b = b, next
	}
	return set
}
