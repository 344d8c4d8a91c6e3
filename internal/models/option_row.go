// Package models defines the domain models used across the application.
package models

// OptionRow is one persisted (strike, side) observation, normalized from
// the upstream option-chain payload. Rows are immutable once built.
//
// CSV headers keep the upstream field spellings so files stay compatible
// with the historical daily dumps; database columns are snake_case.
//
// Pointer fields are the presence-aware analytics: nil means the upstream
// did not report the value, which is persisted as NULL (CSV: empty cell),
// distinct from a reported zero.
type OptionRow struct {
	// Timestamp is the scrape wall-clock time in IST ("2006-01-02 15:04:05").
	Timestamp string `gorm:"column:timestamp;index" csv:"timestamp" json:"timestamp"`

	// Symbol is the synthetic identifier:
	// {UNDERLYING}.{EXCHANGE}.OPT.{YYYYMMDD}.{STRIKE}.{CALL|PUT}
	Symbol string `gorm:"column:symbol;index" csv:"symbol" json:"symbol"`

	// OptionType is the side label: "CALL" or "PUT".
	OptionType string `gorm:"column:option_type" csv:"option_type" json:"option_type"`

	Strike int64  `gorm:"column:strike" csv:"strike" json:"strike"`
	Expiry string `gorm:"column:expiry" csv:"expiry" json:"expiry"`

	Bid          float64 `gorm:"column:bid" csv:"bid" json:"bid"`
	Ask          float64 `gorm:"column:ask" csv:"ask" json:"ask"`
	Last         float64 `gorm:"column:last" csv:"last" json:"last"`
	Volume       int64   `gorm:"column:volume" csv:"volume" json:"volume"`
	OpenInterest int64   `gorm:"column:open_interest" csv:"open_interest" json:"open_interest"`

	ImpliedVolatility *float64 `gorm:"column:implied_volatility" csv:"impliedVolatility" json:"impliedVolatility"`
	PChangeInOI       *float64 `gorm:"column:pchange_in_oi" csv:"pchangeinOpenInterest" json:"pchangeinOpenInterest"`
	TotalBuyQuantity  *int64   `gorm:"column:total_buy_quantity" csv:"totalBuyQuantity" json:"totalBuyQuantity"`
	TotalSellQuantity *int64   `gorm:"column:total_sell_quantity" csv:"totalSellQuantity" json:"totalSellQuantity"`

	// UnderlyingValue is the index spot: the per-option value when present,
	// else the payload-level one, else NULL.
	UnderlyingValue *float64 `gorm:"column:underlying_value" csv:"underlyingValue" json:"underlyingValue"`

	// Underlying is the index name as reported by the upstream, falling
	// back to the tracked symbol.
	Underlying string `gorm:"column:underlying" csv:"underlying" json:"underlying"`

	// Identifier is the upstream contract identifier (e.g.
	// "OPTIDXNIFTY27-06-2024CE22000.00").
	Identifier string `gorm:"column:identifier" csv:"identifier" json:"identifier"`

	PChange *float64 `gorm:"column:pchange" csv:"pChange" json:"pChange"`
}

func (OptionRow) TableName() string {
	return "option_chain"
}
