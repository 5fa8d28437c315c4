package fizzbuzz

// IsPrime reports whether n is prime using exact trial division: 2 is prime,
// other even numbers are not, and odd candidates are divided by every odd
// divisor up to the square root. Exact for the whole int range this engine
// operates on.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
