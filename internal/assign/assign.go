// Package assign matches delivery orders to courier partners through a
// minimum-cost bipartite matching over a distance/efficiency cost matrix.
package assign

import (
	"errors"

	"courieropt/internal/opt"
)

// ErrInfeasible is returned when there is no meaningful matching to
// compute, i.e. orders or partners is empty.
var ErrInfeasible = errors.New("assignment infeasible: orders and partners required")

// Pair is one matched order/partner with its per-pair metrics.
type Pair struct {
	OrderID      string
	PartnerID    string
	DistanceKm   float64
	Cost         float64
	Efficiency   float64
	EstimatedMin float64
}

// Result is the outcome of one assignment solve. UnassignedOrders and
// UnassignedPartners hold the IDs matched to padding when the two sides
// have unequal counts.
type Result struct {
	Pairs              []Pair
	TotalCost          float64
	AverageEfficiency  float64
	UnassignedOrders   []string
	UnassignedPartners []string
}

// costMatrix builds the |orders| x |partners| matrix. Cost rewards
// proximity and penalizes low partner efficiency.
func costMatrix(orders []opt.Point, partners []opt.Partner) [][]float64 {
	m := make([][]float64, len(orders))
	for i, o := range orders {
		m[i] = make([]float64, len(partners))
		for j, pt := range partners {
			d := opt.Haversine(o.Lat, o.Lng, pt.Lat, pt.Lng)
			m[i][j] = d * (1 + (1 - pt.Efficiency))
		}
	}
	return m
}

// pad squares the matrix by appending dummy rows/columns priced above any
// real entry so the solver never prefers them over a real match.
func pad(m [][]float64, rows, cols int) [][]float64 {
	n := rows
	if cols > n {
		n = cols
	}
	maxCost := 0.0
	for _, row := range m {
		for _, c := range row {
			if c > maxCost {
				maxCost = c
			}
		}
	}
	dummy := maxCost*10 + 1
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			if i < rows && j < cols {
				out[i][j] = m[i][j]
			} else {
				out[i][j] = dummy
			}
		}
	}
	return out
}

// Solve computes the optimal order-to-partner assignment. The matching is
// one order per partner per solve; partner capacity is validated upstream
// and recorded on the pair by the caller if needed.
func Solve(orders []opt.Point, partners []opt.Partner, params opt.Params) (Result, error) {
	if len(orders) == 0 || len(partners) == 0 {
		return Result{}, ErrInfeasible
	}
	params = params.WithDefaults()
	m := costMatrix(orders, partners)
	padded := pad(m, len(orders), len(partners))
	match := hungarian(padded)

	res := Result{}
	effSum := 0.0
	for i, j := range match {
		if i >= len(orders) {
			// dummy row matched to a real partner
			if j < len(partners) {
				res.UnassignedPartners = append(res.UnassignedPartners, partners[j].ID)
			}
			continue
		}
		if j >= len(partners) {
			res.UnassignedOrders = append(res.UnassignedOrders, orders[i].ID)
			continue
		}
		o, pt := orders[i], partners[j]
		d := opt.Haversine(o.Lat, o.Lng, pt.Lat, pt.Lng)
		pair := Pair{
			OrderID:      o.ID,
			PartnerID:    pt.ID,
			DistanceKm:   d,
			Cost:         m[i][j],
			Efficiency:   (pt.Efficiency + 1/(1+d)) / 2,
			EstimatedMin: d / params.BaseSpeedKmh * 60,
		}
		res.Pairs = append(res.Pairs, pair)
		res.TotalCost += pair.Cost
		effSum += pair.Efficiency
	}
	if len(res.Pairs) > 0 {
		res.AverageEfficiency = effSum / float64(len(res.Pairs))
	}
	return res, nil
}
