package av

import "fmt"

// Rational is an exact fraction, used for time bases and frame rates.
type Rational struct {
	Num int32
	Den int32
}

// NewRational returns num/den without reducing it.
func NewRational(num, den int32) Rational {
	return Rational{Num: num, Den: den}
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Float returns the value as a float64, or 0 when the denominator is zero.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// IsZero reports whether the fraction has no meaningful value.
func (r Rational) IsZero() bool {
	return r.Num == 0 || r.Den == 0
}

// Invert swaps numerator and denominator. Converting a frame rate to a time
// base is the common use.
func (r Rational) Invert() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// Rescale converts a timestamp from one time base to another, rounding to
// the nearest representable value. NoPTS passes through unchanged.
func Rescale(ts int64, from, to Rational) int64 {
	if ts == NoPTS || from.IsZero() || to.IsZero() {
		return ts
	}
	num := int64(from.Num) * int64(to.Den)
	den := int64(from.Den) * int64(to.Num)
	if den == 0 {
		return ts
	}
	neg := false
	if ts < 0 {
		ts, neg = -ts, true
	}
	out := (ts*num + den/2) / den
	if neg {
		out = -out
	}
	return out
}

// NoPTS marks a timestamp with no defined value.
const NoPTS int64 = -9223372036854775808

// TimeBase is the internal microsecond time base used for container-level
// durations and seek targets.
var TimeBase = Rational{Num: 1, Den: 1000000}
