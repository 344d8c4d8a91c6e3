package nse

// Upstream JSON shapes for the option-chain-indices endpoint. The payload
// nests everything under "records"; only the strike entries, the expiry
// list and the index spot value are kept.
//
// Fields that the upstream omits for illiquid contracts are pointers so
// "not reported" stays distinguishable from "reported as zero" all the way
// to the sinks.

// OptionQuote is one side (CE or PE) of a strike entry.
type OptionQuote struct {
	StrikePrice           float64  `json:"strikePrice"`
	ExpiryDate            string   `json:"expiryDate"`
	Underlying            string   `json:"underlying"`
	Identifier            string   `json:"identifier"`
	OpenInterest          int64    `json:"openInterest"`
	ChangeInOpenInterest  int64    `json:"changeinOpenInterest"`
	PChangeInOpenInterest *float64 `json:"pchangeinOpenInterest"`
	TotalTradedVolume     int64    `json:"totalTradedVolume"`
	ImpliedVolatility     *float64 `json:"impliedVolatility"`
	LastPrice             float64  `json:"lastPrice"`
	Change                float64  `json:"change"`
	PChange               *float64 `json:"pChange"`
	TotalBuyQuantity      *int64   `json:"totalBuyQuantity"`
	TotalSellQuantity     *int64   `json:"totalSellQuantity"`
	BidQty                int64    `json:"bidQty"`
	BidPrice              float64  `json:"bidprice"`
	AskQty                int64    `json:"askQty"`
	AskPrice              float64  `json:"askPrice"`
	UnderlyingValue       *float64 `json:"underlyingValue"`
}

// StrikeEntry is one row of records.data: a strike/expiry pair with up to
// two side blocks. The upstream occasionally embeds a side block whose own
// expiry belongs to a different entry; consumers must check ExpiryDate
// against the quote's before trusting it.
type StrikeEntry struct {
	StrikePrice float64      `json:"strikePrice"`
	ExpiryDate  string       `json:"expiryDate"`
	CE          *OptionQuote `json:"CE"`
	PE          *OptionQuote `json:"PE"`
}

// OptionChain is the fetched projection handed to the normalizer:
// records.data, records.expiryDates and records.underlyingValue.
type OptionChain struct {
	Data            []StrikeEntry
	ExpiryDates     []string
	UnderlyingValue *float64
}

// optionChainResponse mirrors the raw response envelope.
type optionChainResponse struct {
	Records struct {
		Data            []StrikeEntry `json:"data"`
		ExpiryDates     []string      `json:"expiryDates"`
		UnderlyingValue *float64      `json:"underlyingValue"`
	} `json:"records"`
}
