package models

// Identity names a tradable instrument across the system. The composite
// "exchange:symbol" string is the join key used on the wire and in the
// watch registry.
type Identity struct {
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
}

// Key returns the wire format of the identity.
func (id Identity) Key() string {
	return id.Exchange + ":" + id.Symbol
}

// ParseKey splits an "exchange:symbol" key back into an Identity.
func ParseKey(key string) (Identity, bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			if i == 0 || i == len(key)-1 {
				return Identity{}, false
			}
			return Identity{Exchange: key[:i], Symbol: key[i+1:]}, true
		}
	}
	return Identity{}, false
}

// Contract is one perpetual contract as served by the discovery API.
// Entries are immutable once fetched; the catalog replaces them wholesale
// on every refresh.
type Contract struct {
	Symbol      string  `json:"symbol"`
	BaseCoin    string  `json:"base_coin"`
	QuoteCoin   string  `json:"quote_coin"`
	Exchange    string  `json:"exchange"`
	ListTime    int64   `json:"list_time"`
	ListDate    string  `json:"list_date"`
	AgeDays     float64 `json:"age_days"`
	MaxLeverage int     `json:"max_leverage"`
	IsNew       bool    `json:"is_new"`
}

// Identity returns the contract's composite key.
func (c Contract) Identity() Identity {
	return Identity{Exchange: c.Exchange, Symbol: c.Symbol}
}
