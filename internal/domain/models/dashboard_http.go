package models

// CoinListRequest filters the contract listing panel. Mode is "new",
// "all" or an exchange name.
type CoinListRequest struct {
	Mode   string `query:"mode" json:"mode" default:"new" validate:"omitempty,max=32"`
	Search string `query:"search" json:"search" validate:"omitempty,max=64"`
}

// SearchRequest narrows the coin list without changing the mode.
type SearchRequest struct {
	Q string `query:"q" json:"q" validate:"omitempty,max=64"`
}

// WatchToggleRequest identifies one instrument on the watch routes.
type WatchToggleRequest struct {
	Exchange string `param:"exchange" json:"exchange" validate:"required,max=32"`
	Symbol   string `param:"symbol" json:"symbol" validate:"required,max=64"`
}
