package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// categoryTotal is one row of the dashboard aggregate.
type categoryTotal struct {
	CategoryID int    `json:"category_id"`
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Total      string `json:"total"`
}

// totals aggregates the ledger by category. Optional from/to query params
// (YYYY-MM-DD) restrict the date range inclusively.
func (s *Server) totals(c *gin.Context) {
	led, err := s.engine.Ledger(s.ledgerTable)
	if err != nil {
		s.fail(c, err)
		return
	}
	expenses, err := led.ReadAll()
	if err != nil {
		s.fail(c, err)
		return
	}

	from := c.Query("from")
	to := c.Query("to")

	sums := map[int]decimal.Decimal{}
	counts := map[int]int{}
	grand := decimal.Zero
	for _, e := range expenses {
		day := e.Date.Format("2006-01-02")
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		sums[e.CategoryID] = sums[e.CategoryID].Add(e.Amount)
		counts[e.CategoryID]++
		grand = grand.Add(e.Amount)
	}

	rows := make([]categoryTotal, 0, len(sums))
	for _, cat := range s.refs.Categories() {
		if counts[cat.ID] == 0 {
			continue
		}
		rows = append(rows, categoryTotal{
			CategoryID: cat.ID,
			Category:   cat.Name,
			Count:      counts[cat.ID],
			Total:      sums[cat.ID].StringFixed(2),
		})
		delete(sums, cat.ID)
		delete(counts, cat.ID)
	}

	// Category IDs with no reference row (deleted out of band) still count
	// toward the grand total, so give them a bucket rather than dropping them.
	unknownSum := decimal.Zero
	unknownCount := 0
	for catID, sum := range sums {
		unknownSum = unknownSum.Add(sum)
		unknownCount += counts[catID]
	}
	if unknownCount > 0 {
		rows = append(rows, categoryTotal{
			Category: "Unknown",
			Count:    unknownCount,
			Total:    unknownSum.StringFixed(2),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": rows,
		"total":      grand.StringFixed(2),
	})
}
