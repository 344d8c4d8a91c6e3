package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquant/nsechain/internal/nse"
)

func sampleChain() *nse.OptionChain {
	iv := 14.5
	return &nse.OptionChain{
		ExpiryDates: []string{"2024-06-27", "2024-07-25"},
		Data: []nse.StrikeEntry{
			{
				StrikePrice: 22000,
				ExpiryDate:  "2024-06-27",
				CE: &nse.OptionQuote{
					ExpiryDate:        "2024-06-27",
					OpenInterest:      1500,
					LastPrice:         120.5,
					Change:            -3.10,
					ImpliedVolatility: &iv,
				},
				PE: &nse.OptionQuote{ExpiryDate: "2024-07-25", LastPrice: 80.25},
			},
			{
				StrikePrice: 22500,
				ExpiryDate:  "2024-07-25",
				CE:          &nse.OptionQuote{ExpiryDate: "2024-07-25", LastPrice: 10},
			},
		},
	}
}

func TestMatrixFiltersByExpiryAndSideValidity(t *testing.T) {
	rows := Matrix(sampleChain(), "2024-06-27")
	require.Len(t, rows, 1)

	row := rows[0]
	require.Len(t, row, len(Columns))

	// Call side populated.
	assert.Equal(t, "1500", row[0])   // c_OI
	assert.Equal(t, "14.5", row[3])   // c_IV
	assert.Equal(t, "120.5", row[4])  // c_LTP
	assert.Equal(t, "-3.1", row[5])   // c_CHNG, trailing zero trimmed
	assert.Equal(t, "22000", row[10]) // STRIKE

	// Put block belongs to another expiry: all dashes.
	for _, cell := range row[11:] {
		assert.Equal(t, "-", cell)
	}
}

func TestMatrixRendersZerosAsDash(t *testing.T) {
	rows := Matrix(sampleChain(), "2024-07-25")
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "-", row[0])     // c_OI zero
	assert.Equal(t, "-", row[3])     // c_IV absent
	assert.Equal(t, "10", row[4])    // c_LTP
	assert.Equal(t, "22500", row[10])
}

func TestRenderIncludesHeaderAndStrike(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleChain(), "2024-06-27")

	out := buf.String()
	assert.Contains(t, out, "c_LTP")
	assert.Contains(t, out, "STRIKE")
	assert.Contains(t, out, "22000")
}
