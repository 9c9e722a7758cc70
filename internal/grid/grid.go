// Package grid holds the date-grid pricing math: combining per-day
// minimum prices into the outbound/return total matrix, classifying
// cells into price bands, and reconciling the scrollable window of
// day prices that incremental updates patch one edge at a time.
package grid

import (
	"math"

	"github.com/iliyamo/flyexpress/internal/repository"
)

// Fixed price-band thresholds.  Bands are independent of the
// per-window cheapest value: a window full of expensive fares still
// renders red.
const (
	LowBandMax  = 150.0 // strictly below -> low
	HighBandMin = 300.0 // strictly above -> high
)

// Band classifies a cell total for rendering.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// BandFor buckets a total price into its fixed band.
func BandFor(total float64) Band {
	switch {
	case total < LowBandMax:
		return BandLow
	case total > HighBandMin:
		return BandHigh
	default:
		return BandMedium
	}
}

// Cell is one entry of the combined matrix.  Invalid cells (return
// before outbound) carry no price and render as placeholders.
type Cell struct {
	OutDate  string  `json:"outDate"`
	RetDate  string  `json:"retDate"`
	Valid    bool    `json:"valid"`
	Total    float64 `json:"total,omitempty"`
	Band     Band    `json:"band,omitempty"`
	Cheapest bool    `json:"cheapest,omitempty"`
}

// Combine builds the full total-price matrix from the two day-price
// axes.  Rows follow the return dates, columns the outbound dates.  A
// cell is valid only when its return date is on or after its outbound
// date; valid totals are outbound minimum plus return minimum.  The
// minimum valid total of the window is returned and the matching cells
// are flagged for highlight.  ISO dates compare correctly as strings.
func Combine(out []repository.OutboundDayPrice, ret []repository.ReturnDayPrice) ([][]Cell, float64) {
	cheapest := math.Inf(1)
	matrix := make([][]Cell, len(ret))
	for i, r := range ret {
		row := make([]Cell, len(out))
		for j, o := range out {
			c := Cell{OutDate: o.Date, RetDate: r.Date}
			if r.Date >= o.Date {
				c.Valid = true
				c.Total = o.Price + r.Price
				c.Band = BandFor(c.Total)
				if c.Total < cheapest {
					cheapest = c.Total
				}
			}
			row[j] = c
		}
		matrix[i] = row
	}
	if math.IsInf(cheapest, 1) {
		return matrix, 0
	}
	for i := range matrix {
		for j := range matrix[i] {
			if matrix[i][j].Valid && matrix[i][j].Total == cheapest {
				matrix[i][j].Cheapest = true
			}
		}
	}
	return matrix, cheapest
}
