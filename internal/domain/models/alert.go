package models

// Alert is a notification of a large executed order near the current price.
// Alerts are keyed by bare symbol on the wire; when two exchanges list the
// same symbol the feed cannot tell them apart. That limitation is part of
// the upstream contract and is preserved here.
type Alert struct {
	Symbol   string  `json:"symbol"`
	Exchange string  `json:"exchange"`
	Side     string  `json:"side"`
	ValueUSD float64 `json:"value_usd"`
	Price    float64 `json:"price"`
	Time     string  `json:"time"`
}

// Alert sides.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)
