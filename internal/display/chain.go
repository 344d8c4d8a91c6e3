// Package display renders an option chain the way the NSE website lays it
// out: call columns on the left, strike in the middle, put columns on the
// right, one row per strike for a single expiry.
package display

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/openquant/nsechain/internal/nse"
)

// Columns is the website column order: calls left, strike, puts right.
var Columns = []string{
	"c_OI", "c_CHNG_IN_OI", "c_VOLUME", "c_IV", "c_LTP", "c_CHNG",
	"c_BID_QTY", "c_BID", "c_ASK", "c_ASK_QTY",
	"STRIKE", "p_BID_QTY", "p_BID", "p_ASK", "p_ASK_QTY",
	"p_CHNG", "p_LTP", "p_IV", "p_VOLUME", "p_CHNG_IN_OI", "p_OI",
}

// Matrix builds the display rows for one expiry. A side is shown only
// when present and its embedded expiry matches the entry's (same validity
// rule as normalization); missing sides and zero values render as "-".
func Matrix(chain *nse.OptionChain, expiry string) [][]string {
	var rows [][]string

	for i := range chain.Data {
		entry := &chain.Data[i]
		if entry.ExpiryDate != expiry {
			continue
		}

		ce := validSide(entry.CE, expiry)
		pe := validSide(entry.PE, expiry)
		if ce == nil && pe == nil {
			continue
		}

		row := make([]string, 0, len(Columns))
		row = append(row, callCells(ce)...)
		row = append(row, intCell(int64(entry.StrikePrice)))
		row = append(row, putCells(pe)...)
		rows = append(rows, row)
	}

	return rows
}

// Render writes the matrix for one expiry as an ASCII table.
func Render(w io.Writer, chain *nse.OptionChain, expiry string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Columns)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(Matrix(chain, expiry))
	table.Render()
}

func validSide(quote *nse.OptionQuote, expiry string) *nse.OptionQuote {
	if quote == nil || quote.ExpiryDate != expiry {
		return nil
	}
	return quote
}

func callCells(q *nse.OptionQuote) []string {
	if q == nil {
		return blanks(10)
	}
	return []string{
		intCell(q.OpenInterest),
		intCell(q.ChangeInOpenInterest),
		intCell(q.TotalTradedVolume),
		floatPtrCell(q.ImpliedVolatility),
		floatCell(q.LastPrice),
		changeCell(q.Change),
		intCell(q.BidQty),
		floatCell(q.BidPrice),
		floatCell(q.AskPrice),
		intCell(q.AskQty),
	}
}

func putCells(q *nse.OptionQuote) []string {
	if q == nil {
		return blanks(10)
	}
	return []string{
		intCell(q.BidQty),
		floatCell(q.BidPrice),
		floatCell(q.AskPrice),
		intCell(q.AskQty),
		changeCell(q.Change),
		floatCell(q.LastPrice),
		floatPtrCell(q.ImpliedVolatility),
		intCell(q.TotalTradedVolume),
		intCell(q.ChangeInOpenInterest),
		intCell(q.OpenInterest),
	}
}

func blanks(n int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "-"
	}
	return cells
}

func intCell(v int64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}

func floatCell(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floatPtrCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return floatCell(*v)
}

// changeCell restricts change values to 2 decimal places with trailing
// zeros removed, matching the website's CHNG columns.
func changeCell(v float64) string {
	if v == 0 {
		return "-"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
