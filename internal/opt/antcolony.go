package opt

import (
	"context"
	"math"
	"math/rand"
)

// minEdgeKm floors the distance heuristic so co-located points do not
// produce an infinite attractiveness.
const minEdgeKm = 1e-6

// AntColony runs ant colony optimization over the problem's distance
// matrix. The pheromone matrix is owned by this invocation and reset every
// call; nothing persists across requests. Cancellation is checked once per
// iteration.
func AntColony(ctx context.Context, p Problem, params Params, rng *rand.Rand) (Route, error) {
	if len(p.Points) == 0 {
		return Route{}, ErrNoPoints
	}
	params = params.WithDefaults()
	n := len(p.Points)
	if n == 1 {
		return evaluate(p, []int{0}, params), nil
	}

	pher := make([][]float64, n)
	for i := range pher {
		pher[i] = make([]float64, n)
		for j := range pher[i] {
			pher[i][j] = 1.0
		}
	}

	var best []int
	bestDist := math.MaxFloat64
	for it := 0; it < params.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return Route{}, err
		}
		routes := make([][]int, params.AntCount)
		for a := 0; a < params.AntCount; a++ {
			routes[a] = antWalk(p, pher, params, rng)
			if d := pathDistance(p, routes[a]); d < bestDist {
				bestDist = d
				best = append([]int(nil), routes[a]...)
			}
		}
		// evaporate, then deposit proportional to route quality
		for i := range pher {
			for j := range pher[i] {
				pher[i][j] *= 1 - params.EvaporationRate
			}
		}
		for _, r := range routes {
			d := pathDistance(p, r)
			deposit := 1.0
			if d > 0 {
				deposit = 1 / d
			}
			for i := 0; i < len(r)-1; i++ {
				pher[r[i]][r[i+1]] += deposit
				pher[r[i+1]][r[i]] += deposit
			}
		}
	}
	return evaluate(p, best, params), nil
}

// antWalk builds one full tour, choosing each next point with probability
// proportional to pheromone^alpha * (1/distance)^beta.
func antWalk(p Problem, pher [][]float64, params Params, rng *rand.Rand) []int {
	n := len(p.Points)
	order := make([]int, 0, n)
	visited := make([]bool, n)
	cur := rng.Intn(n)
	order = append(order, cur)
	visited[cur] = true
	weights := make([]float64, n)
	for len(order) < n {
		sum := 0.0
		for j := 0; j < n; j++ {
			weights[j] = 0
			if visited[j] {
				continue
			}
			d := p.Dist[cur][j]
			if d < minEdgeKm {
				d = minEdgeKm
			}
			w := math.Pow(pher[cur][j], params.Alpha) * math.Pow(1/d, params.Beta)
			weights[j] = w
			sum += w
		}
		next := -1
		if sum > 0 {
			r := rng.Float64() * sum
			acc := 0.0
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				acc += weights[j]
				if r <= acc {
					next = j
					break
				}
			}
		}
		if next == -1 {
			// numeric underflow: fall back to the first unvisited point
			for j := 0; j < n; j++ {
				if !visited[j] {
					next = j
					break
				}
			}
		}
		order = append(order, next)
		visited[next] = true
		cur = next
	}
	return order
}
