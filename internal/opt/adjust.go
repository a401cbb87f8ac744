package opt

import (
	"context"
	"time"
)

// DefaultAdjustThreshold is the fraction of the current route's estimated
// time an incident must exceed before a recompute is triggered.
const DefaultAdjustThreshold = 0.1

// Delta is a real-time condition change on one edge of the current route.
type Delta struct {
	FromID       string
	ToID         string
	AddedMinutes float64
}

// Adjustment reports whether a recompute was triggered and, when it was,
// the replacement route and its impact relative to the current one under
// the degraded edge weights.
type Adjustment struct {
	Needed          bool
	Route           *Route
	Algorithm       string
	DeltaDistanceKm float64
	DeltaMin        float64
}

// Adjust decides whether a condition delta warrants recomputing the route.
// points arrive in current route order. The delta's added minutes are
// compared against threshold * current estimated time; below that the
// current route stands. Above it, the same algorithm that produced the
// route (hybrid if unknown) is re-run on a matrix where the affected edge
// carries the equivalent extra distance.
func Adjust(ctx context.Context, points []Point, algorithm string, params Params, seed int64, delta Delta, threshold float64) (Adjustment, error) {
	if len(points) == 0 {
		return Adjustment{}, ErrNoPoints
	}
	if threshold <= 0 {
		threshold = DefaultAdjustThreshold
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	params = params.WithDefaults()

	from, to := -1, -1
	for i, pt := range points {
		switch pt.ID {
		case delta.FromID:
			from = i
		case delta.ToID:
			to = i
		}
	}
	if from == -1 || to == -1 {
		return Adjustment{}, ErrUnknownEdge
	}

	p := NewProblem(points)
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	current := evaluate(p, order, params)
	if delta.AddedMinutes <= threshold*current.EstimatedMin {
		return Adjustment{Needed: false}, nil
	}

	// encode the incident as extra distance on the affected edge and
	// recompute on the perturbed copy
	penaltyKm := delta.AddedMinutes / 60 * params.BaseSpeedKmh
	perturbed := Problem{Points: p.Points, Dist: make([][]float64, len(p.Dist))}
	for i := range p.Dist {
		perturbed.Dist[i] = append([]float64(nil), p.Dist[i]...)
	}
	perturbed.Dist[from][to] += penaltyKm
	perturbed.Dist[to][from] += penaltyKm

	adjusted, used, err := dispatch(ctx, perturbed, algorithm, params, seed)
	if err != nil {
		return Adjustment{}, err
	}
	degraded := evaluate(perturbed, order, params)
	return Adjustment{
		Needed:          true,
		Route:           &adjusted,
		Algorithm:       used,
		DeltaDistanceKm: adjusted.TotalDistanceKm - degraded.TotalDistanceKm,
		DeltaMin:        adjusted.EstimatedMin - degraded.EstimatedMin,
	}, nil
}
