package opt

import (
	"context"
	"math"
)

// Greedy builds a route by nearest-neighbor selection starting from the
// first point. Deterministic, O(n^2), and the fallback when the stochastic
// strategies fail.
func Greedy(ctx context.Context, p Problem, params Params) (Route, error) {
	if len(p.Points) == 0 {
		return Route{}, ErrNoPoints
	}
	if err := ctx.Err(); err != nil {
		return Route{}, err
	}
	n := len(p.Points)
	order := make([]int, 0, n)
	visited := make([]bool, n)
	cur := 0
	order = append(order, cur)
	visited[cur] = true
	for len(order) < n {
		next, bestDist := -1, math.MaxFloat64
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if d := p.Dist[cur][j]; d < bestDist {
				bestDist = d
				next = j
			}
		}
		order = append(order, next)
		visited[next] = true
		cur = next
	}
	return evaluate(p, order, params), nil
}
