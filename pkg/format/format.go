package format

import "strconv"

// USD abbreviates a notional quote-currency amount for display:
// $1.2M, $45K, $730.
func USD(n float64) string {
	switch {
	case n >= 1_000_000:
		return "$" + strconv.FormatFloat(n/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return "$" + strconv.FormatFloat(n/1_000, 'f', 0, 64) + "K"
	default:
		return "$" + strconv.FormatFloat(n, 'f', 0, 64)
	}
}

// Price renders a price with precision tiered by magnitude, so large caps
// don't drown in decimals and micro-caps don't round to zero.
func Price(p float64) string {
	return strconv.FormatFloat(p, 'f', PriceDecimals(p), 64)
}

// PriceDecimals returns the display precision for a price.
func PriceDecimals(p float64) int {
	switch {
	case p >= 100:
		return 2
	case p >= 1:
		return 4
	case p >= 0.01:
		return 6
	default:
		return 8
	}
}

// Score renders a signed signal score with an explicit plus sign on
// positive values, no decimals.
func Score(s float64) string {
	out := strconv.FormatFloat(s, 'f', 0, 64)
	if s > 0 {
		return "+" + out
	}
	return out
}

// Pct renders a percentage with no decimals, e.g. "72%".
func Pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64) + "%"
}
