package price

import "strconv"

// Parse extracts a numeric price from raw page text by stripping everything
// except digits and the decimal point. The second return value is false when
// nothing parseable remains; a missing price is reported as missing, never 0.
func Parse(raw string) (float64, bool) {
	buf := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '.' {
			buf = append(buf, c)
		}
	}
	if len(buf) == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Min returns the smallest value in the slice, false when empty. Used for
// multi-condition trade-in tables where the worst-case estimate is the one
// that matters.
func Min(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min, true
}
