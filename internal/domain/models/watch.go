package models

// Classification values carried in Signal.Classification.
const (
	SignalStrongBuy  = "STRONG_BUY"
	SignalBuy        = "BUY"
	SignalNeutral    = "NEUTRAL"
	SignalSell       = "SELL"
	SignalStrongSell = "STRONG_SELL"
)

// Zone is one liquidity cluster in the order book. Order within a signal
// payload is server-determined (nearest-first) and never re-sorted here.
type Zone struct {
	Price       float64 `json:"price"`
	VolumeUSD   float64 `json:"volume_usd"`
	Side        string  `json:"side,omitempty"`
	DistancePct float64 `json:"distance_pct"`
	OrderCount  int     `json:"order_count,omitempty"`
	IsMajor     bool    `json:"is_major"`
}

// LiquidityZones groups zones below and above the current price.
type LiquidityZones struct {
	Support    []Zone `json:"support"`
	Resistance []Zone `json:"resistance"`
}

// Suggestion is a server-computed trade idea for one strategy mode.
type Suggestion struct {
	Action      string  `json:"action"`
	Mode        string  `json:"mode"`
	EntryPrice  float64 `json:"entry_price"`
	TargetPrice float64 `json:"target_price"`
	StopPrice   float64 `json:"stop_price"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
}

// Suggestions holds the two strategy slots; either may be absent.
type Suggestions struct {
	Scalp    *Suggestion `json:"scalp"`
	Reversal *Suggestion `json:"reversal"`
}

// Signal is the server-computed signal payload for a watched instrument.
// Score is signed, roughly +/-100 by convention but never clamped here.
type Signal struct {
	Score          float64        `json:"score"`
	Classification string         `json:"signal"`
	Confidence     float64        `json:"confidence"`
	Reasons        []string       `json:"reasons"`
	Zones          LiquidityZones `json:"liquidity_zones"`
	Suggestions    Suggestions    `json:"suggestions"`
}

// WatchEntry is the latest known snapshot for one watched instrument.
// Signal stays nil until the first stats push arrives. A zero LastPrice
// means no price has been received yet.
type WatchEntry struct {
	Exchange       string  `json:"exchange"`
	Symbol         string  `json:"symbol"`
	LastPrice      float64 `json:"last_price"`
	BidVolumeUSD   float64 `json:"bid_volume_usd"`
	AskVolumeUSD   float64 `json:"ask_volume_usd"`
	ImbalanceRatio float64 `json:"imbalance_ratio"`
	SpreadPct      float64 `json:"spread_pct"`
	Pressure       string  `json:"pressure"`
	Signal         *Signal `json:"signal"`
}

// Identity returns the entry's composite key.
func (w WatchEntry) Identity() Identity {
	return Identity{Exchange: w.Exchange, Symbol: w.Symbol}
}

// StatsUpdate is a partial WatchEntry carried in a stats push. Nil fields
// were omitted on the wire and must leave the existing value untouched.
// A present Signal replaces the previous payload wholesale.
type StatsUpdate struct {
	LastPrice      *float64 `json:"last_price"`
	BidVolumeUSD   *float64 `json:"bid_volume_usd"`
	AskVolumeUSD   *float64 `json:"ask_volume_usd"`
	ImbalanceRatio *float64 `json:"imbalance_ratio"`
	SpreadPct      *float64 `json:"spread_pct"`
	Pressure       *string  `json:"pressure"`
	Signal         *Signal  `json:"signal"`
}

// ApplyTo shallow-unions the update onto e.
func (u StatsUpdate) ApplyTo(e *WatchEntry) {
	if u.LastPrice != nil {
		e.LastPrice = *u.LastPrice
	}
	if u.BidVolumeUSD != nil {
		e.BidVolumeUSD = *u.BidVolumeUSD
	}
	if u.AskVolumeUSD != nil {
		e.AskVolumeUSD = *u.AskVolumeUSD
	}
	if u.ImbalanceRatio != nil {
		e.ImbalanceRatio = *u.ImbalanceRatio
	}
	if u.SpreadPct != nil {
		e.SpreadPct = *u.SpreadPct
	}
	if u.Pressure != nil {
		e.Pressure = *u.Pressure
	}
	if u.Signal != nil {
		e.Signal = u.Signal
	}
}
