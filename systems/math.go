package systems

// Wrap reduces v into [0, n) for any sign of v.
func Wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// minf returns the smaller of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
