package viewport

import "math"

// DefaultTolerance is the number of float32 steps two scroll targets may
// differ by and still count as equal.
const DefaultTolerance uint32 = 8

// NearlyEqual reports whether a and b are at most ulps representable
// float32 values apart. NaN is never nearly equal to anything; +0 and -0
// are equal.
func NearlyEqual(a, b float32, ulps uint32) bool {
	if a != a || b != b {
		return false
	}
	if a == b {
		return true
	}
	d := ordered(a) - ordered(b)
	if d < 0 {
		d = -d
	}
	return d <= int64(ulps)
}

// ordered maps float32 bit patterns onto integers that sort like the floats.
func ordered(f float32) int64 {
	u := math.Float32bits(f)
	if u&(1<<31) != 0 {
		return -int64(u &^ (1 << 31))
	}
	return int64(u)
}
