package opt

import "math"

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// lat/lng pairs. Symmetric, zero for identical inputs; NaN/Inf inputs
// propagate through the float math.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// pathDistance sums the matrix distance over consecutive order pairs.
// Open path: no return edge to the start.
func pathDistance(p Problem, order []int) float64 {
	total := 0.0
	for i := 0; i < len(order)-1; i++ {
		total += p.Dist[order[i]][order[i+1]]
	}
	return total
}

// EstimateMinutes converts route distance plus per-stop service time into
// an estimated duration in minutes.
func EstimateMinutes(distKm float64, stops int, params Params) float64 {
	params = params.WithDefaults()
	return distKm/params.BaseSpeedKmh*60 + float64(stops)*params.StopMinutes
}

// EfficiencyScore normalizes distance covered per hour against the
// configured ceiling, capped to [0,1].
func EfficiencyScore(distKm, minutes float64, params Params) float64 {
	params = params.WithDefaults()
	if minutes <= 0 {
		return 0
	}
	return math.Min(1, (distKm/(minutes/60))/params.MaxEfficiencyKmh)
}

// evaluate derives the full Route metrics for an order.
func evaluate(p Problem, order []int, params Params) Route {
	dist := pathDistance(p, order)
	minutes := EstimateMinutes(dist, len(order), params)
	return Route{
		Order:           order,
		TotalDistanceKm: dist,
		EstimatedMin:    minutes,
		Efficiency:      EfficiencyScore(dist, minutes, params),
	}
}

// fitness is the GA/hybrid comparison score: strictly decreasing in
// distance, always in (0,1].
func fitness(distKm float64) float64 {
	return 1 / (1 + distKm)
}
