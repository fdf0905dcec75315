package timex

import "time"

// PeriodFromHz returns the period of a tick source running at freqHz.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) time.Duration {
	if freqHz == 0 {
		freqHz = 1
	}
	return time.Duration(1_000_000_000 / uint64(freqHz))
}

// TicksIn reports how many whole ticks of length per fit in d.
func TicksIn(d, per time.Duration) uint64 {
	if per <= 0 || d <= 0 {
		return 0
	}
	return uint64(d / per)
}
