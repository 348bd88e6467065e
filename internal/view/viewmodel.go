package view

import (
	"MemeFlow/internal/domain/models"
	"MemeFlow/pkg/format"
)

// Slot counts are fixed so the grid never reflows as data arrives:
// missing entries render as explicit empty slots, never as shorter lists.
const (
	ReasonSlots     = 4
	ZoneSlots       = 3
	SuggestionSlots = 2
	AlertSlots      = 4
	FeedAlerts      = 20
)

// Badge shown before any data has arrived, distinct from the NEUTRAL
// badge used once data exists without a classification.
const BadgeWaiting = "WAITING"

// AlertSource reads recent alerts for one symbol, newest first.
type AlertSource interface {
	Read(symbol string, n int) []models.Alert
	Feed(n int) []models.Alert
}

// Model is the fixed-shape structure consumed directly by presentation.
type Model struct {
	Coins         []CoinItem  `json:"coins"`
	Cards         []WatchCard `json:"cards"`
	AlertFeed     []AlertSlot `json:"alert_feed"`
	ContractCount int         `json:"contract_count"`
}

// CoinItem is one row of the filtered contract list.
type CoinItem struct {
	Exchange    string  `json:"exchange"`
	Symbol      string  `json:"symbol"`
	BaseCoin    string  `json:"base_coin"`
	ListDate    string  `json:"list_date"`
	AgeDays     float64 `json:"age_days"`
	MaxLeverage int     `json:"max_leverage"`
	New         bool    `json:"new"`
	Watching    bool    `json:"watching"`
}

// ReasonSlot is one line of signal rationale, or an explicit blank.
type ReasonSlot struct {
	Text  string `json:"text"`
	Empty bool   `json:"empty"`
}

// ZoneSlot is one liquidity zone row, or an explicit blank.
type ZoneSlot struct {
	Price       string  `json:"price"`
	Volume      string  `json:"volume"`
	DistancePct float64 `json:"distance_pct"`
	Major       bool    `json:"major"`
	Empty       bool    `json:"empty"`
}

// SuggestionSlot is one strategy slot; an absent suggestion keeps the
// slot with a waiting message so the card layout holds still.
type SuggestionSlot struct {
	Mode    string `json:"mode"`
	Action  string `json:"action,omitempty"`
	Entry   string `json:"entry,omitempty"`
	Target  string `json:"target,omitempty"`
	Stop    string `json:"stop,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Waiting string `json:"waiting,omitempty"`
	Empty   bool   `json:"empty"`
}

// AlertSlot is one recent large-order row, or an explicit blank.
type AlertSlot struct {
	Symbol string `json:"symbol,omitempty"`
	Side   string `json:"side,omitempty"`
	Value  string `json:"value,omitempty"`
	Price  string `json:"price,omitempty"`
	Time   string `json:"time,omitempty"`
	Empty  bool   `json:"empty"`
}

// WatchCard carries everything one watch card displays.
type WatchCard struct {
	Exchange   string `json:"exchange"`
	Symbol     string `json:"symbol"`
	Key        string `json:"key"`
	Price      string `json:"price"`
	HasData    bool   `json:"has_data"`
	Badge      string `json:"badge"`
	Score      string `json:"score"`
	Confidence string `json:"confidence"`
	BidVolume  string `json:"bid_volume"`
	AskVolume  string `json:"ask_volume"`
	Pressure   string `json:"pressure"`

	Reasons     [ReasonSlots]ReasonSlot         `json:"reasons"`
	Support     [ZoneSlots]ZoneSlot             `json:"support"`
	Resistance  [ZoneSlots]ZoneSlot             `json:"resistance"`
	Suggestions [SuggestionSlots]SuggestionSlot `json:"suggestions"`
	Alerts      [AlertSlots]AlertSlot           `json:"alerts"`
}

// PricePlaceholder is shown until the first price arrives.
const PricePlaceholder = "..."

// Derive is a pure transform from current state to the display model.
// contracts must already be filtered by search text.
func Derive(contracts []models.Contract, watches []models.WatchEntry, alerts AlertSource, contractCount int) Model {
	m := Model{
		Coins:         make([]CoinItem, 0, len(contracts)),
		Cards:         make([]WatchCard, 0, len(watches)),
		ContractCount: contractCount,
	}

	watched := make(map[string]bool, len(watches))
	for _, w := range watches {
		watched[w.Identity().Key()] = true
	}

	for _, c := range contracts {
		m.Coins = append(m.Coins, CoinItem{
			Exchange:    c.Exchange,
			Symbol:      c.Symbol,
			BaseCoin:    c.BaseCoin,
			ListDate:    c.ListDate,
			AgeDays:     c.AgeDays,
			MaxLeverage: c.MaxLeverage,
			New:         c.IsNew,
			Watching:    watched[c.Identity().Key()],
		})
	}

	for _, w := range watches {
		m.Cards = append(m.Cards, deriveCard(w, alerts))
	}

	for _, a := range alerts.Feed(FeedAlerts) {
		m.AlertFeed = append(m.AlertFeed, alertSlot(a))
	}

	return m
}

func deriveCard(w models.WatchEntry, alerts AlertSource) WatchCard {
	card := WatchCard{
		Exchange:  w.Exchange,
		Symbol:    w.Symbol,
		Key:       w.Identity().Key(),
		Price:     PricePlaceholder,
		HasData:   w.LastPrice != 0 || w.Signal != nil,
		BidVolume: format.USD(w.BidVolumeUSD),
		AskVolume: format.USD(w.AskVolumeUSD),
		Pressure:  w.Pressure,
	}
	if w.LastPrice != 0 {
		card.Price = format.Price(w.LastPrice)
	}

	var sig models.Signal
	if w.Signal != nil {
		sig = *w.Signal
	}

	switch {
	case !card.HasData:
		card.Badge = BadgeWaiting
	case sig.Classification == "":
		card.Badge = models.SignalNeutral
	default:
		card.Badge = sig.Classification
	}
	card.Score = format.Score(sig.Score)
	card.Confidence = format.Pct(sig.Confidence)

	for i := 0; i < ReasonSlots; i++ {
		if i < len(sig.Reasons) {
			card.Reasons[i] = ReasonSlot{Text: sig.Reasons[i]}
		} else {
			card.Reasons[i] = ReasonSlot{Empty: true}
		}
	}

	card.Support = zoneSlots(sig.Zones.Support)
	card.Resistance = zoneSlots(sig.Zones.Resistance)

	card.Suggestions[0] = suggestionSlot("scalp", sig.Suggestions.Scalp)
	card.Suggestions[1] = suggestionSlot("reversal", sig.Suggestions.Reversal)

	recent := alerts.Read(w.Symbol, AlertSlots)
	for i := 0; i < AlertSlots; i++ {
		if i < len(recent) {
			card.Alerts[i] = alertSlot(recent[i])
		} else {
			card.Alerts[i] = AlertSlot{Empty: true}
		}
	}

	return card
}

// zoneSlots truncates or pads server-ordered zones to the fixed slot
// count without re-sorting.
func zoneSlots(zones []models.Zone) [ZoneSlots]ZoneSlot {
	var out [ZoneSlots]ZoneSlot
	for i := 0; i < ZoneSlots; i++ {
		if i < len(zones) {
			z := zones[i]
			out[i] = ZoneSlot{
				Price:       format.Price(z.Price),
				Volume:      format.USD(z.VolumeUSD),
				DistancePct: z.DistancePct,
				Major:       z.IsMajor,
			}
		} else {
			out[i] = ZoneSlot{Empty: true}
		}
	}
	return out
}

func suggestionSlot(mode string, s *models.Suggestion) SuggestionSlot {
	if s == nil {
		return SuggestionSlot{
			Mode:    mode,
			Waiting: "waiting for setup",
			Empty:   true,
		}
	}
	return SuggestionSlot{
		Mode:   mode,
		Action: s.Action,
		Entry:  format.Price(s.EntryPrice),
		Target: format.Price(s.TargetPrice),
		Stop:   format.Price(s.StopPrice),
		Reason: s.Reason,
	}
}

func alertSlot(a models.Alert) AlertSlot {
	return AlertSlot{
		Symbol: a.Symbol,
		Side:   a.Side,
		Value:  format.USD(a.ValueUSD),
		Price:  format.Price(a.Price),
		Time:   a.Time,
	}
}
