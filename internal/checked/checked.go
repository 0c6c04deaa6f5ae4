/*
Package checked implements basic arithmetic with overflow checks, used by
the Get builder (graql.Get.EndOffset) when summing a query's offset and
limit for pagination.
*/
package checked

import (
	"errors"
	"math"
)

var ErrOverflow = errors.New("arithmetic overflow")

// AddInt64 returns a + b with an integer overflow check.
func AddInt64(a, b int64) (sum int64, ok bool) {
	if (b > 0 && a > math.MaxInt64-b) ||
		(b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// SubInt64 returns a - b with an integer overflow check.
func SubInt64(a, b int64) (diff int64, ok bool) {
	if (b > 0 && a < math.MinInt64+b) ||
		(b < 0 && a > math.MaxInt64+b) {
		return 0, false
	}
	return a - b, true
}

// MulInt64 returns a * b with an integer overflow check.
func MulInt64(a, b int64) (product int64, ok bool) {
	if (a > 0 && b > 0 && a > math.MaxInt64/b) ||
		(a > 0 && b <= 0 && b < math.MinInt64/a) ||
		(a <= 0 && b > 0 && a < math.MinInt64/b) ||
		(a < 0 && b <= 0 && b < math.MaxInt64/a) {
		return 0, false
	}
	return a * b, true
}

// NegateInt64 returns -a with an integer overflow check.
func NegateInt64(a int64) (negated int64, ok bool) {
	if a == math.MinInt64 {
		return 0, false
	}
	return -a, true
}

// AddInt32 returns a + b with an integer overflow check.
func AddInt32(a, b int32) (sum int32, ok bool) {
	if (b > 0 && a > math.MaxInt32-b) ||
		(b < 0 && a < math.MinInt32-b) {
		return 0, false
	}
	return a + b, true
}

// SubInt32 returns a - b with an integer overflow check.
func SubInt32(a, b int32) (diff int32, ok bool) {
	if (b > 0 && a < math.MinInt32+b) ||
		(b < 0 && a > math.MaxInt32+b) {
		return 0, false
	}
	return a - b, true
}

// MulInt32 returns a * b with an integer overflow check.
func MulInt32(a, b int32) (product int32, ok bool) {
	if (a > 0 && b > 0 && a > math.MaxInt32/b) ||
		(a > 0 && b <= 0 && b < math.MinInt32/a) ||
		(a <= 0 && b > 0 && a < math.MinInt32/b) ||
		(a < 0 && b <= 0 && b < math.MaxInt32/a) {
		return 0, false
	}
	return a * b, true
}

// AddUint64 returns a + b with an integer overflow check.
func AddUint64(a, b uint64) (sum uint64, ok bool) {
	if math.MaxUint64-a < b {
		return 0, false
	}
	return a + b, true
}

// SubUint64 returns a - b with an integer overflow check.
func SubUint64(a, b uint64) (diff uint64, ok bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}
