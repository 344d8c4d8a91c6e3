// Package normalize flattens fetched option chains into uniform rows.
//
// Normalization never fails: malformed (entry, side) pairs are dropped,
// well-formed ones always produce exactly one row. Output order is a
// contract: payload entry order, CALL before PUT within an entry.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/internal/models"
	"github.com/openquant/nsechain/internal/nse"
	"github.com/openquant/nsechain/utils"
)

// side pairs the upstream key with the persisted label, in emit order.
var sides = []struct {
	label string
	quote func(e *nse.StrikeEntry) *nse.OptionQuote
}{
	{"CALL", func(e *nse.StrikeEntry) *nse.OptionQuote { return e.CE }},
	{"PUT", func(e *nse.StrikeEntry) *nse.OptionQuote { return e.PE }},
}

// Rows converts a fetched chain into normalized rows for one underlying.
//
// A side block is trusted only when its embedded expiry matches the
// entry's: the upstream sometimes embeds a quote that logically belongs to
// another expiry, and merging it would corrupt the row. Such pairs are
// skipped whole, never emitted partially.
func Rows(chain *nse.OptionChain, underlying, exchange string, timestamp time.Time) []*models.OptionRow {
	ts := utils.FormatTimestamp(timestamp)
	rows := make([]*models.OptionRow, 0, 2*len(chain.Data))
	skipped := 0

	for i := range chain.Data {
		entry := &chain.Data[i]
		for _, side := range sides {
			quote := side.quote(entry)
			if quote == nil {
				continue
			}
			if quote.ExpiryDate != entry.ExpiryDate {
				skipped++
				continue
			}
			rows = append(rows, buildRow(entry, quote, chain, underlying, exchange, side.label, ts))
		}
	}

	if skipped > 0 {
		logrus.Debugf("Dropped %d %s side blocks with mismatched embedded expiry", skipped, underlying)
	}
	return rows
}

func buildRow(entry *nse.StrikeEntry, quote *nse.OptionQuote, chain *nse.OptionChain,
	underlying, exchange, label, timestamp string) *models.OptionRow {

	strike := int64(entry.StrikePrice)

	// Per-option spot wins over the payload-level one; both may be absent.
	underlyingValue := quote.UnderlyingValue
	if underlyingValue == nil {
		underlyingValue = chain.UnderlyingValue
	}

	underlyingName := quote.Underlying
	if underlyingName == "" {
		underlyingName = underlying
	}

	return &models.OptionRow{
		Timestamp:         timestamp,
		Symbol:            SymbolFor(underlying, exchange, entry.ExpiryDate, strike, label),
		OptionType:        label,
		Strike:            strike,
		Expiry:            entry.ExpiryDate,
		Bid:               quote.BidPrice,
		Ask:               quote.AskPrice,
		Last:              quote.LastPrice,
		Volume:            quote.TotalTradedVolume,
		OpenInterest:      quote.OpenInterest,
		ImpliedVolatility: quote.ImpliedVolatility,
		PChangeInOI:       quote.PChangeInOpenInterest,
		TotalBuyQuantity:  quote.TotalBuyQuantity,
		TotalSellQuantity: quote.TotalSellQuantity,
		UnderlyingValue:   underlyingValue,
		Underlying:        underlyingName,
		Identifier:        quote.Identifier,
		PChange:           quote.PChange,
	}
}

// SymbolFor composes the synthetic contract identifier:
// {UNDERLYING}.{EXCHANGE}.OPT.{expiry sans dashes}.{strike}.{CALL|PUT}
func SymbolFor(underlying, exchange, expiry string, strike int64, label string) string {
	return fmt.Sprintf("%s.%s.OPT.%s.%d.%s",
		underlying, exchange, strings.ReplaceAll(expiry, "-", ""), strike, label)
}
