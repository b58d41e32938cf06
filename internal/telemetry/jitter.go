package telemetry

// Jitter constants. A single linear congruential step (glibc rand
// constants) is reduced to a uniform fraction in [-0.03, +0.03].
// Readings derived from it are stable within a time bucket and
// reproducible across runs with the same start instant.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7FFFFFFF

	jitterBuckets  = 6001
	jitterSpan     = 0.06
	jitterMinimum  = -0.03
	jitterDivision = jitterBuckets - 1
)

// jitter maps a seed to a deterministic fraction in [-0.03, +0.03].
func jitter(seed int64) float64 {
	v := (seed*lcgMultiplier + lcgIncrement) & lcgMask
	return (float64(v%jitterBuckets)/float64(jitterDivision))*jitterSpan + jitterMinimum
}
