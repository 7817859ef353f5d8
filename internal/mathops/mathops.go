// Package mathops implements the numeric kernels behind the /bfhl operations:
// Fibonacci generation, primality, and GCD/LCM reductions over integer slices.
//
// All functions are pure and safe for concurrent use.
package mathops

import (
	"errors"
	"math"
)

// MaxFibonacciTerms is the largest term count whose values all fit in an int64.
// F(92) = 7540113804746346429 is the last Fibonacci number below math.MaxInt64.
const MaxFibonacciTerms = 93

var (
	// ErrOverflow is returned when a result does not fit in an int64.
	ErrOverflow = errors.New("result overflows int64")
	// ErrZeroOperand is returned by LCM when one of the operands is zero.
	ErrZeroOperand = errors.New("lcm is undefined for zero")
)

// Fibonacci returns the first n terms of the Fibonacci sequence starting at F(0)=0.
// n <= 0 yields an empty (non-nil) slice. Terms past MaxFibonacciTerms wrap around;
// callers are expected to bound n.
func Fibonacci(n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	if n == 1 {
		return []int64{0}
	}

	series := make([]int64, n)
	series[0], series[1] = 0, 1
	for i := 2; i < n; i++ {
		series[i] = series[i-1] + series[i-2]
	}
	return series
}

// IsPrime reports whether n is prime using odd trial division up to √n.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	// i <= n/i avoids i*i overflowing for values near math.MaxInt64
	for i := int64(3); i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// FilterPrimes returns the primes in seq, preserving their input order.
func FilterPrimes(seq []int64) []int64 {
	primes := make([]int64, 0, len(seq))
	for _, n := range seq {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// HCF reduces seq with GCD from the left.
//
//	HCF([])          = 0
//	HCF([x])         = |x|
//	HCF([12,18,24])  = 6
func HCF(seq []int64) int64 {
	switch len(seq) {
	case 0:
		return 0
	case 1:
		return abs(seq[0])
	}

	result := seq[0]
	for _, n := range seq[1:] {
		result = GCD(result, n)
	}
	return result
}

// LCM returns |a*b| / GCD(a, b).
// Returns ErrZeroOperand if either operand is zero and ErrOverflow if the
// result does not fit in an int64.
func LCM(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, ErrZeroOperand
	}
	a, b = abs(a), abs(b)

	// divide first so the intermediate never exceeds the result
	q := a / GCD(a, b)
	if q > math.MaxInt64/b {
		return 0, ErrOverflow
	}
	return q * b, nil
}

// LCMOf reduces seq with LCM from the left.
// An empty slice yields 0 and a single element its absolute value.
// Zero elements are expected to be rejected by the caller.
func LCMOf(seq []int64) (int64, error) {
	switch len(seq) {
	case 0:
		return 0, nil
	case 1:
		return abs(seq[0]), nil
	}

	result := seq[0]
	for _, n := range seq[1:] {
		l, err := LCM(result, n)
		if err != nil {
			return 0, err
		}
		result = l
	}
	return result, nil
}

// abs assumes n != math.MinInt64; integer parsing upstream excludes it.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
